package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/encoding"
)

func TestDetect(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		wantCharset string
		want        string
	}

	tests := []testCase{
		{
			name:        "utf-8 passes through",
			input:       []byte("name,quantity,price\nCafé crème,2,3.50\n"),
			wantCharset: encoding.UTF8,
			want:        "name,quantity,price\nCafé crème,2,3.50\n",
		},
		{
			name:        "utf-8 bom is stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "name;quantity;price\n"...),
			wantCharset: encoding.UTF8,
			want:        "name;quantity;price\n",
		},
		{
			// "Crème,1,2\n" in Windows-1252, where è = 0xE8. Too short for a stable chardet verdict,
			// but every single-byte Latin charset it may pick decodes è the same way.
			name:  "windows-1252",
			input: []byte{'C', 'r', 0xE8, 'm', 'e', ',', '1', ',', '2', '\n'},
			want:  "Crème,1,2\n",
		},
		{
			name:        "utf-16le with bom",
			input:       []byte{0xFF, 0xFE, 'a', 0x00, ',', 0x00, '1', 0x00},
			wantCharset: encoding.UTF16LE,
			want:        "a,1",
		},
		{
			name:        "utf-16be with bom",
			input:       []byte{0xFE, 0xFF, 0x00, 'a', 0x00, ',', 0x00, '1'},
			wantCharset: encoding.UTF16BE,
			want:        "a,1",
		},
		{
			name:        "empty input",
			input:       nil,
			wantCharset: encoding.UTF8,
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	// Longer than the sniff window so decoding has to continue past the peeked bytes.
	input := bytes.Repeat([]byte("Widget,1,2.50\n"), 1000)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
