package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG so scanned CV uploads decode

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

const jpegQuality = 95

// RenderPages rasterizes every page of a PDF into JPEG images. Used to
// serve inline previews of certificates and uploaded CVs.
func RenderPages(pdfData []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([][]byte, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i, err)
		}

		pages = append(pages, buf.Bytes())
	}

	return pages, nil
}

// DetectImageFormat reports the image format of data, or an error when
// data is not a decodable image (e.g. a PDF).
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}

// NormalizeImageToJPEG re-encodes any decodable image as JPEG so stored
// uploads share one raster format.
func NormalizeImageToJPEG(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
