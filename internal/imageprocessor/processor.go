package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// DefaultMaxPixels - предел площади исходного изображения (40 Мп).
// Декодированный RGBA занимает 4 байта на пиксель независимо от размера файла.
const DefaultMaxPixels = 40_000_000

var ErrImageTooLarge = errors.New("image dimensions exceed the allowed limit")

// Processor строит JPEG-миниатюры для вложений-изображений
type Processor struct {
	size      int // максимальная сторона миниатюры
	quality   int // JPEG quality (1-100)
	maxPixels int
}

func NewProcessor(size, quality int) *Processor {
	if size <= 0 {
		size = 300
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{size: size, quality: quality, maxPixels: DefaultMaxPixels}
}

// Thumbnail уменьшает изображение (jpeg, png) с сохранением пропорций так,
// чтобы оно помещалось в квадрат size x size, и кодирует в JPEG.
// Изображения меньше квадрата не увеличиваются.
// Размеры проверяются по заголовку до декодирования пикселей.
func (p *Processor) Thumbnail(reader io.Reader) ([]byte, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(reader, &header))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(io.MultiReader(&header, reader))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Processor) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := width, height
	if width > p.size || height > p.size {
		if width >= height {
			newWidth = p.size
			newHeight = max(1, height*p.size/width)
		} else {
			newHeight = p.size
			newWidth = max(1, width*p.size/height)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	// у JPEG нет прозрачности, подкладываем белый фон
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
