package asdf

// Version is written as the asdf_library version unless overridden.
const Version = "0.1.0"

// Software describes the library that produced a file.
type Software struct {
	Name     string
	Version  string
	Author   string
	Homepage string
}

// DefaultLibrary is the asdf_library entry written by default.
var DefaultLibrary = Software{
	Name:     "asdf-fixtures",
	Version:  Version,
	Homepage: "https://github.com/robert-malhotra/asdf-fixtures",
}

// Option configures file encoding.
type Option func(*options)

type options struct {
	library     Software
	blockIndex  bool
	checksums   bool
	compression string
}

func defaultOptions() *options {
	return &options{
		library:    DefaultLibrary,
		blockIndex: true,
		checksums:  true,
	}
}

// WithLibrary sets the asdf_library entry. Entries without a name are
// ignored.
func WithLibrary(sw Software) Option {
	return func(o *options) {
		if sw.Name != "" {
			o.library = sw
		}
	}
}

// WithBlockIndex enables or disables the trailing block index.
func WithBlockIndex(enabled bool) Option {
	return func(o *options) {
		o.blockIndex = enabled
	}
}

// WithChecksums enables or disables MD5 block checksums. Disabled checksums
// are written as zeros.
func WithChecksums(enabled bool) Option {
	return func(o *options) {
		o.checksums = enabled
	}
}

// WithCompression compresses every block with the named codec ("zlib" or
// "lz4"). The empty name stores blocks uncompressed.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}
