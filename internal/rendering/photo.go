package rendering

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding
)

// DecodePhoto decodes a PNG, JPEG, GIF or WebP photo and checks its size
func DecodePhoto(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &LayoutError{Stage: StagePhoto, Message: "failed to decode photo", Cause: err}
	}
	if err := checkPhoto(img); err != nil {
		return nil, fmt.Errorf("%s photo: %w", format, err)
	}
	return img, nil
}

func checkPhoto(img image.Image) error {
	if img == nil {
		return &LayoutError{Stage: StagePhoto, Message: "photo is missing"}
	}
	b := img.Bounds()
	if b.Dx() < minPhotoSidePx || b.Dy() < minPhotoSidePx {
		return &LayoutError{
			Stage:   StagePhoto,
			Message: fmt.Sprintf("photo is %dx%d, minimum is %dx%d", b.Dx(), b.Dy(), minPhotoSidePx, minPhotoSidePx),
		}
	}
	return nil
}

// FitRect returns the largest centered rectangle of a srcW x srcH image
// with the aspect ratio of dstW x dstH. Scaling it to dst fills dst without
// stretching; the longer axis is cropped evenly on both sides.
func FitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}

	// Compare srcW/srcH with dstW/dstH without floats
	if srcW*dstH > srcH*dstW {
		w := max(srcH*dstW/dstH, 1)
		x := (srcW - w) / 2
		return image.Rect(x, 0, x+w, srcH)
	}
	h := max(srcW*dstH/dstW, 1)
	y := (srcH - h) / 2
	return image.Rect(0, y, srcW, y+h)
}

// FitPhoto center-crops photo to region's aspect ratio and scales it into
// region of dst
func FitPhoto(dst xdraw.Image, region image.Rectangle, photo image.Image) {
	if region.Empty() || photo == nil {
		return
	}
	b := photo.Bounds()
	crop := FitRect(b.Dx(), b.Dy(), region.Dx(), region.Dy()).Add(b.Min)
	xdraw.CatmullRom.Scale(dst, region, photo, crop, xdraw.Src, nil)
}
