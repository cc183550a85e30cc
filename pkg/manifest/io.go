package manifest

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/logging"
)

// Format selects the serialization of a manifest file.
type Format string

const (
	// FormatJSON is the canonical textual schema.
	FormatJSON Format = "json"

	// FormatCBOR is the compact binary serialization of the same schema.
	FormatCBOR Format = "cbor"
)

// cborEnc writes Core Deterministic Encoding (RFC 8949 §4.2) so the
// same manifest always produces identical bytes.
var cborEnc cbor.EncMode

var cborDec cbor.DecMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: cbor encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: cbor decoder initialization failed: " + err.Error())
	}
}

// DetectFormat maps a file name to its serialization and whether the
// payload is gzip compressed. A trailing .gz wraps either format;
// anything that is not .cbor is treated as JSON.
func DetectFormat(path string) (Format, bool) {
	gz := false
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz = true
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR, gz
	}
	return FormatJSON, gz
}

// Save writes the manifest to path, choosing the container from the
// file name and creating parent directories as needed.
func Save(fs afero.Fs, path string, m *Manifest) error {
	log := logging.GetLogger("manifest")
	format, gz := DetectFormat(path)

	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrManifestIO, "creating directory for %s", path)
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestIO, "creating %s", path)
	}

	var w io.Writer = f
	var gzw *gzip.Writer
	if gz {
		gzw = gzip.NewWriter(f)
		w = gzw
	}

	if err := encode(format, w, m); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrManifestIO, "encoding %s", path)
	}
	if gzw != nil {
		if err := gzw.Close(); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, errors.ErrManifestIO, "compressing %s", path)
		}
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestIO, "writing %s", path)
	}

	log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Bool("gzip", gz).
		Msg("manifest saved")
	return nil
}

func encode(format Format, w io.Writer, m *Manifest) error {
	if format == FormatCBOR {
		return cborEnc.NewEncoder(w).Encode(m)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Load reads a manifest from path and checks its structure. Leaf
// digests are trusted as stored; no file content is read. Call
// Validate for the stronger internal-consistency check.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestIO, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	format, gz := DetectFormat(path)
	var r io.Reader = f
	if gz {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.CorruptManifest("not a gzip stream: " + err.Error())
		}
		defer func() { _ = gzr.Close() }()
		r = gzr
	}

	m := &Manifest{}
	if format == FormatCBOR {
		if err := cborDec.NewDecoder(r).Decode(m); err != nil {
			return nil, errors.CorruptManifest("cbor decode failed: " + err.Error())
		}
	} else {
		if err := json.NewDecoder(r).Decode(m); err != nil {
			return nil, errors.CorruptManifest("json decode failed: " + err.Error())
		}
	}

	if err := m.checkStructure(); err != nil {
		return nil, err
	}
	return m, nil
}
