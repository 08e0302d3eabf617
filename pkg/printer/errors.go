package printer

import (
	"errors"

	"github.com/goliatone/go-formprinter/pkg/config"
)

var (
	// ErrMissingType reports a content node without a type attribute.
	ErrMissingType = errors.New("printer: type is missing in element description")
	// ErrMissingMetadata reports a variant that could not resolve its tag.
	ErrMissingMetadata = errors.New("printer: needed object information is missing")
	// ErrMalformedInput reports content that is neither a node nor a markup leaf.
	ErrMalformedInput = config.ErrMalformedInput
	// ErrNilConfig reports a Build call without a configuration node.
	ErrNilConfig = errors.New("printer: configuration is nil")
)
