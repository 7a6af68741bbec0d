package tags

import (
	mflac "github.com/mewkiz/flac"
	"go.senan.xyz/taglib"
)

// DurationProber measures track length in whole seconds. Zero means the
// length could not be determined.
type DurationProber interface {
	ProbeSeconds(path string) int
}

// Prober reads FLAC stream info directly and asks TagLib for everything else.
type Prober struct{}

func (Prober) ProbeSeconds(path string) int {
	if extension(path) == "flac" {
		if seconds := flacSeconds(path); seconds > 0 {
			return seconds
		}
	}
	props, err := taglib.ReadProperties(path)
	if err != nil || props.Length <= 0 {
		return 0
	}
	return int(props.Length.Seconds())
}

func flacSeconds(path string) int {
	stream, err := mflac.Open(path)
	if err != nil {
		return 0
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0
	}
	return int(info.NSamples / uint64(info.SampleRate))
}
