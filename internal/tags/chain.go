package tags

import (
	"errors"

	"apollo/internal/faults"
)

// Chain tries each reader in order. The first result with any non-empty
// field wins. When every reader errors the joined error is returned.
type Chain []Reader

// NewDefaultReader returns the production chain: taglib, then the
// format-native readers, then dhowden/tag.
func NewDefaultReader() Chain {
	return Chain{TaglibReader{}, NativeReader{}, GenericReader{}}
}

func (c Chain) ReadTags(path string) (Tags, error) {
	var (
		errs      []error
		succeeded bool
	)
	for _, reader := range c {
		if reader == nil {
			continue
		}
		t, err := reader.ReadTags(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		succeeded = true
		if !t.IsEmpty() {
			return t, nil
		}
	}
	if succeeded || len(errs) == 0 {
		return Tags{}, nil
	}
	return Tags{}, faults.Wrap(faults.ErrExtraction, "tags", "read", path, errors.Join(errs...))
}
