package mailer

import (
	"bytes"
	"mime"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// LogoContentID is the cid the templates reference.
const LogoContentID = "jv-logo"

const logoHeight = 60

// LoadLogo reads the brand logo and scales it to a 60px-high PNG. Formats
// imaging cannot decode are embedded as-is.
func LoadLogo(path string) (*InlineAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		name := filepath.Base(path)
		ct := mime.TypeByExtension(filepath.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		return &InlineAsset{Name: name, ContentID: LogoContentID, ContentType: ct, Data: data}, nil
	}

	if img.Bounds().Dy() != logoHeight {
		img = imaging.Resize(img, 0, logoHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return &InlineAsset{Name: "logo.png", ContentID: LogoContentID, ContentType: "image/png", Data: buf.Bytes()}, nil
}
