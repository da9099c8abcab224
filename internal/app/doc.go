// Package app provides the application service layer.
//
// Orchestrates use cases: login/logout, the shared item list, paging and
// waveform plots. Sits between HTTP handlers and domain repositories and
// depends on domain interfaces, not concrete implementations.
package app
