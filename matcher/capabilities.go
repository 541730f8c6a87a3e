package matcher

import "golang.org/x/sys/cpu"

// Capabilities reports runtime CPU features that can inform how callers
// size their prefilter budget (e.g. whether it's worth Aho-Corasick's
// construction cost for a one-off search on this machine). The matcher
// itself runs the same token-carrying NFA regardless of these flags — this
// is an informational probe, not a dispatch switch.
type Capabilities struct {
	HasAVX2 bool
	HasSSE42 bool
}

// DetectCapabilities reads the process's CPU feature flags once; callers
// typically cache the result for the lifetime of the program.
func DetectCapabilities() Capabilities {
	return Capabilities{
		HasAVX2:  cpu.X86.HasAVX2,
		HasSSE42: cpu.X86.HasSSE42,
	}
}
