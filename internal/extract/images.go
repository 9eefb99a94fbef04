package extract

import (
	"fmt"
	"strings"

	"notiongrid/internal/notion"
)

// imageExtensions is the fixed suffix set that qualifies a url property
// value as an embeddable image.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ImageReference is one image extracted from a query result. Derived
// data only; recomputed on every fetch.
type ImageReference struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	Name           string `json:"name"`
	Caption        string `json:"caption"`
	SourceProperty string `json:"source"`
}

// ImageList scans every property of every row and collects image
// references in a stable order: rows as returned by the gateway,
// properties in response order within a row, file entries in array
// order. Duplicate URLs produce duplicate entries.
func ImageList(rows []notion.Page) []ImageReference {
	var images []ImageReference

	for i := range rows {
		row := &rows[i]
		for _, name := range columnOrder(row) {
			pv := row.Properties[name]

			switch pv.Type {
			case notion.PropertyTypeFiles:
				for idx, f := range pv.Files {
					url := f.URL()
					if url == "" {
						continue
					}
					images = append(images, ImageReference{
						ID:             fmt.Sprintf("%s-%s-%d", row.ID, name, idx),
						URL:            url,
						Name:           fileName(f, len(images)+1),
						Caption:        notion.PlainText(f.Caption),
						SourceProperty: name,
					})
				}

			case notion.PropertyTypeURL:
				if !IsImageURL(pv.URL) {
					continue
				}
				images = append(images, ImageReference{
					ID:             fmt.Sprintf("%s-%s-url", row.ID, name),
					URL:            pv.URL,
					Name:           "Image from " + name,
					SourceProperty: name,
				})
			}
		}
	}

	return images
}

// IsImageURL reports whether the URL's suffix matches the fixed image
// extension set. Matching is case-insensitive.
func IsImageURL(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func fileName(f notion.File, n int) string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("Image %d", n)
}
