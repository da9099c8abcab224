// Package waveform renders two sine waves on one chart and returns the image
// as a base64-encoded JPEG.
package waveform
