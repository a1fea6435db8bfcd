// Package image4bit implements the 4-bit grayscale pixel format of SSD1322
// panels.
//
// Each byte packs two horizontally adjacent pixels. The high nibble holds the
// left (even x) pixel and the low nibble the right (odd x) pixel:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A  0x3C
//
// HorizontalNibble implements draw.Image, so it works with image/draw:
//
//	img := image4bit.NewHorizontalNibble(image.Rect(0, 0, 256, 64))
//	img.Fill(img.Bounds(), image4bit.Gray4{Y: 15})
//	img.SetGray4(10, 20, image4bit.Gray4{Y: 8})
package image4bit
