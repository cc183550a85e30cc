package manifest_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/manifest"
	"github.com/arthur-debert/dirsum/pkg/treehash"
	"github.com/arthur-debert/dirsum/pkg/types"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		format   manifest.Format
		compress bool
	}{
		{"plain_json", "tree.json", manifest.FormatJSON, false},
		{"plain_cbor", "tree.cbor", manifest.FormatCBOR, false},
		{"gzipped_json", "tree.json.gz", manifest.FormatJSON, true},
		{"gzipped_cbor", "tree.cbor.gz", manifest.FormatCBOR, true},
		{"bare_gz_defaults_to_json", "tree.gz", manifest.FormatJSON, true},
		{"no_extension_defaults_to_json", "manifest", manifest.FormatJSON, false},
		{"uppercase", "TREE.CBOR.GZ", manifest.FormatCBOR, true},
		{"nested_path", "out/snapshots/tree.cbor", manifest.FormatCBOR, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, compress := manifest.DetectFormat(tt.path)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.compress, compress)
		})
	}
}

// requireSameTree compares two node trees field by field.
func requireSameTree(t *testing.T, want, got *types.Node) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Name, got.Name)
	require.Equal(t, want.Type, got.Type)
	require.Equal(t, want.Digest, got.Digest)
	require.Equal(t, want.Size, got.Size)
	require.Equal(t, want.ModTimeNS, got.ModTimeNS)
	require.Len(t, got.Children, len(want.Children))
	for i := range want.Children {
		requireSameTree(t, want.Children[i], got.Children[i])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := scanManifest(t, sampleTree(), "/tree", treehash.Options{})

	for _, name := range []string{"tree.json", "tree.cbor", "tree.json.gz", "tree.cbor.gz"} {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, manifest.Save(fs, name, m))

			got, err := manifest.Load(fs, name)
			require.NoError(t, err)

			assert.Equal(t, m.Algorithm, got.Algorithm)
			assert.Equal(t, m.Version, got.Version)
			assert.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
			requireSameTree(t, m.Root, got.Root)
			require.NoError(t, got.Validate())
		})
	}
}

func TestSaveGzipActuallyCompresses(t *testing.T) {
	m := scanManifest(t, sampleTree(), "/tree", treehash.Options{})
	fs := afero.NewMemMapFs()

	require.NoError(t, manifest.Save(fs, "tree.json.gz", m))

	data, err := afero.ReadFile(fs, "tree.json.gz")
	require.NoError(t, err)
	require.Greater(t, len(data), 2)
	assert.Equal(t, byte(0x1f), data[0])
	assert.Equal(t, byte(0x8b), data[1])
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	m := scanManifest(t, sampleTree(), "/tree", treehash.Options{})
	fs := afero.NewMemMapFs()

	require.NoError(t, manifest.Save(fs, "out/deep/tree.json", m))

	_, err := manifest.Load(fs, "out/deep/tree.json")
	require.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(afero.NewMemMapFs(), "absent.json")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestIO))
}

func TestLoadRejectsMalformedinput(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{
			"not_json",
			"m.json",
			`{{{{`,
		},
		{
			"not_gzip",
			"m.json.gz",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab"}}`,
		},
		{
			"unsupported_version",
			"m.json",
			`{"algorithm":"sha256","version":2,"root":{"name":".","type":"dir","digest":"ab"}}`,
		},
		{
			"missing_algorithm",
			"m.json",
			`{"version":1,"root":{"name":".","type":"dir","digest":"ab"}}`,
		},
		{
			"missing_root",
			"m.json",
			`{"algorithm":"sha256","version":1}`,
		},
		{
			"root_not_dot",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":"tree","type":"dir","digest":"ab"}}`,
		},
		{
			"invalid_node_type",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"device","digest":"ab"}}`,
		},
		{
			"digest_not_hex",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"zz"}}`,
		},
		{
			"empty_digest",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":""}}`,
		},
		{
			"digest_length_mismatch",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"abcd",
			  "children":[{"name":"a","type":"file","digest":"ab"}]}}`,
		},
		{
			"file_with_children",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[{"name":"f","type":"file","digest":"cd",
			    "children":[{"name":"x","type":"file","digest":"ef"}]}]}}`,
		},
		{
			"children_not_sorted",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[{"name":"b","type":"file","digest":"cd"},
			              {"name":"a","type":"file","digest":"ef"}]}}`,
		},
		{
			"duplicate_children",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[{"name":"a","type":"file","digest":"cd"},
			              {"name":"a","type":"file","digest":"ef"}]}}`,
		},
		{
			"entry_name_with_slash",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[{"name":"a/b","type":"file","digest":"cd"}]}}`,
		},
		{
			"entry_name_dotdot",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[{"name":"..","type":"file","digest":"cd"}]}}`,
		},
		{
			"null_child",
			"m.json",
			`{"algorithm":"sha256","version":1,"root":{"name":".","type":"dir","digest":"ab",
			  "children":[null]}}`,
		},
		{
			"not_cbor",
			"m.cbor",
			"\xff\xff\xff\xff",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.body), 0o644))

			_, err := manifest.Load(fs, tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrCorruptManifest),
				"want CORRUPT_MANIFEST, got %v", err)
		})
	}
}
