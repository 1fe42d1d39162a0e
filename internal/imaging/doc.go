// Package imaging provides the raster collaborators around the watermark
// core: file decode/encode, luminance and gradient planes, and diagnostic
// annotation.
//
// The core algorithms in detection and watermark operate on plain float64
// planes and *image.NRGBA buffers; everything that touches files, formats,
// or third-party image libraries is concentrated here. Decoding supports
// PNG, JPEG, GIF, WebP, and BMP. WebP has no encoder in the ecosystem we
// depend on, so WebP inputs are written back as PNG by the CLI.
package imaging
