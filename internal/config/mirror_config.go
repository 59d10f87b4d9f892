package config

import "time"

// MirrorConfig controls the asset pipeline: where output goes and how hard the origin is hit.
type MirrorConfig struct {
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	DocumentName string `json:"document_name,omitempty" yaml:"document_name,omitempty" validate:"required,pathsegment"`
	// Number of concurrent asset retrievals. 1 reproduces strictly sequential behavior.
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=1,max=64"`
	// Minimum spacing between two requests to the same host
	HostDelayMs int `json:"host_delay_ms,omitempty" yaml:"host_delay_ms,omitempty" validate:"min=0,max=60000"`
	HostBurst   int `json:"host_burst,omitempty" yaml:"host_burst,omitempty" validate:"min=1,max=100"`
	// Filename used when a URL has no last path segment
	FallbackName string `json:"fallback_name,omitempty" yaml:"fallback_name,omitempty" validate:"required,pathsegment"`
	// Upper bound on the number of references processed, 0 for no limit
	MaxAssets int          `json:"max_assets,omitempty" yaml:"max_assets,omitempty" validate:"min=0"`
	Layout    LayoutConfig `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// LayoutConfig names the fixed category subdirectories under the output root
type LayoutConfig struct {
	StyleDir  string `json:"style_dir,omitempty" yaml:"style_dir,omitempty" validate:"required,pathsegment"`
	ScriptDir string `json:"script_dir,omitempty" yaml:"script_dir,omitempty" validate:"required,pathsegment"`
	ImageDir  string `json:"image_dir,omitempty" yaml:"image_dir,omitempty" validate:"required,pathsegment"`
	OtherDir  string `json:"other_dir,omitempty" yaml:"other_dir,omitempty" validate:"required,pathsegment"`
}

// NewDefaultMirrorConfig creates default mirror configuration
func NewDefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{
		OutputDir:    DefaultMirrorOutputDir,
		DocumentName: DefaultMirrorDocumentName,
		Concurrency:  DefaultMirrorConcurrency,
		HostDelayMs:  DefaultMirrorHostDelayMs,
		HostBurst:    DefaultMirrorHostBurst,
		FallbackName: DefaultMirrorFallbackName,
		MaxAssets:    DefaultMirrorMaxAssets,
		Layout:       NewDefaultLayoutConfig(),
	}
}

// NewDefaultLayoutConfig creates the default style/script/image/other layout
func NewDefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		StyleDir:  DefaultMirrorStyleDir,
		ScriptDir: DefaultMirrorScriptDir,
		ImageDir:  DefaultMirrorImageDir,
		OtherDir:  DefaultMirrorOtherDir,
	}
}

// HostDelay returns the per-host spacing as a duration
func (mc MirrorConfig) HostDelay() time.Duration {
	return time.Duration(mc.HostDelayMs) * time.Millisecond
}
