/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBOMPolicy(t *testing.T) {
	tests := []struct {
		name       string
		enc        Encoding
		policy     BOMPolicy
		wantPrefix []byte
	}{
		{"UTF-8 默认不写 BOM", UTF8, BOMConventional, nil},
		{"UTF-8 显式要求才写 BOM", UTF8, BOMAlways, []byte{0xEF, 0xBB, 0xBF}},
		{"UTF-16LE 惯例写 BOM", UTF16LE, BOMConventional, []byte{0xFF, 0xFE}},
		{"UTF-16BE 惯例写 BOM", UTF16BE, BOMConventional, []byte{0xFE, 0xFF}},
		{"UTF-16LE 可显式省略", UTF16LE, BOMOmit, nil},
		{"GBK 没有 BOM 定义", GBK, BOMAlways, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode("A", tt.enc, tt.policy)
			require.NoError(t, err)
			if len(tt.wantPrefix) == 0 {
				assert.NotEqual(t, byte(0xEF), got.Bytes[0])
				assert.NotEqual(t, byte(0xFF), got.Bytes[0])
				assert.NotEqual(t, byte(0xFE), got.Bytes[0])
			} else {
				assert.Equal(t, tt.wantPrefix, got.Bytes[:len(tt.wantPrefix)])
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	// 往返律：decode(encode(T, E), E) == T，T 须在 E 中完全可表示
	tests := []struct {
		name string
		enc  Encoding
		text string
	}{
		{"UTF-8 混排", UTF8, fixtureText},
		{"UTF-8 含 emoji", UTF8, "😀😂👍 symbols ©"},
		{"UTF-16LE 混排", UTF16LE, fixtureText},
		{"UTF-16LE 含 emoji", UTF16LE, "😀😂👍"},
		{"UTF-16BE 混排", UTF16BE, fixtureText},
		{"UTF-16BE 含 emoji", UTF16BE, "😀😂👍"},
		{"GBK 混排", GBK, fixtureText},
		{"GB2312 混排", GB2312, fixtureText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.text, tt.enc, BOMOmit)
			require.NoError(t, err)
			require.Zero(t, encoded.Unrepresentable)

			decoded, err := Decode(encoded.Bytes, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.text, decoded.Text)
			assert.Zero(t, decoded.Substitutions)
		})
	}
}

func TestEncodeGBKLossy(t *testing.T) {
	t.Run("emoji 逐个替换为占位符并计数", func(t *testing.T) {
		got, err := Encode("😀😂👍", GBK, BOMOmit)
		require.NoError(t, err)
		assert.Equal(t, []byte("???"), got.Bytes)
		assert.Equal(t, 3, got.Unrepresentable)
	})

	t.Run("emoji 在 UTF-16 中无损", func(t *testing.T) {
		got, err := Encode("😀😂👍", UTF16LE, BOMOmit)
		require.NoError(t, err)
		assert.Zero(t, got.Unrepresentable)
		assert.Len(t, got.Bytes, 12) // 3 个代理对
	})

	t.Run("可表示部分保留", func(t *testing.T) {
		got, err := Encode("测试😀ok", GBK, BOMOmit)
		require.NoError(t, err)
		assert.Equal(t, append([]byte{0xB2, 0xE2, 0xCA, 0xD4}, []byte("?ok")...), got.Bytes)
		assert.Equal(t, 1, got.Unrepresentable)
	})

	t.Run("自定义占位序列", func(t *testing.T) {
		got, err := EncodeWith("😀", GBK, BOMOmit, EncodeOptions{Replacement: []byte("#")})
		require.NoError(t, err)
		assert.Equal(t, []byte("#"), got.Bytes)
		assert.Equal(t, 1, got.Unrepresentable)
	})
}

func TestEncodeGB2312Narrower(t *testing.T) {
	// 丂 (U+4E02) 在 GBK 中是 0x8140，但不在 GB2312 的区位范围内
	gbk, err := Encode("丂", GBK, BOMOmit)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x40}, gbk.Bytes)
	assert.Zero(t, gbk.Unrepresentable)

	gb2312, err := Encode("丂", GB2312, BOMOmit)
	require.NoError(t, err)
	assert.Equal(t, []byte("?"), gb2312.Bytes)
	assert.Equal(t, 1, gb2312.Unrepresentable)
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := Encode("x", Encoding("big5"), BOMOmit)
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}
