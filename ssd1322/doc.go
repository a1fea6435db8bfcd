// Package ssd1322 drives SSD1322 grayscale OLED panels over SPI.
//
// The SSD1322 is a 4-bit grayscale controller with a 480×128 pixel RAM.
// Panels smaller than the RAM are centered in it.
//
// # Panel Variants
//
// A handle is created unconfigured and brought up with one of the supported
// variants:
//
//	Mode256x64         256×64, the common 3.12" module
//	Mode256x64Rotated  256×64 mounted upside down
//	Mode128x64         128×64
//	Mode256x64DualCOM  256×64, odd/even split COM pins, swapped halves
//	Mode480x128        full controller RAM
//
// ParseMode accepts the names printed by Mode.String, e.g. "256x64-rotated".
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO
//	CS          → SPI Chip Select
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	if _, err := host.Init(); err != nil {
//		log.Fatal(err)
//	}
//	port, err := spireg.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer port.Close()
//
//	dev := ssd1322.NewSPI(port, gpioreg.ByName("GPIO25"), gpioreg.ByName("GPIO24"))
//	if err := dev.Begin(ssd1322.Mode256x64); err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Halt()
//
//	dev.Draw(dev.Bounds(), image.NewUniform(color.White), image.Point{})
//
// When a reset pin is given, Begin pulls it low for 200ms and then high for
// 200ms before sending the init sequence.
//
// # Drawing
//
// Write sends a raw HorizontalNibble frame. Draw accepts any image, converts
// it to 16 gray levels and only transfers the smallest changed rectangle,
// widened to the controller's 4-pixel column groups.
//
// Dev implements the periph.io display.Drawer interface.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
