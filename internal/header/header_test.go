package header

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIdentificationBody(channels int, sampleRate int, block0, block1 int) []byte {
	body := make([]byte, 23)
	le := binary.LittleEndian
	le.PutUint32(body, 0) // version
	body[4] = byte(channels)
	le.PutUint32(body[5:], uint32(sampleRate))
	le.PutUint32(body[9:], 0)  // max bitrate
	le.PutUint32(body[13:], 0) // nominal bitrate
	le.PutUint32(body[17:], 0) // min bitrate
	var b0log, b1log uint8
	for 1<<b0log != block0 {
		b0log++
	}
	for 1<<b1log != block1 {
		b1log++
	}
	body[21] = b0log | (b1log << 4)
	body[22] = 1 // framing bit
	return body
}

func TestParseIdentification(t *testing.T) {
	body := buildIdentificationBody(2, 44100, 256, 2048)
	id, err := ParseIdentification(body)
	require.NoError(t, err)
	assert.Equal(t, 2, id.Channels)
	assert.Equal(t, 44100, id.SampleRate)
	assert.Equal(t, 256, id.Block0)
	assert.Equal(t, 2048, id.Block1)
}

func TestParseIdentificationMissingFramingBit(t *testing.T) {
	body := buildIdentificationBody(2, 44100, 256, 2048)
	body[22] = 0
	_, err := ParseIdentification(body)
	assert.Error(t, err)
}

func TestParseIdentificationTooShort(t *testing.T) {
	_, err := ParseIdentification(make([]byte, 10))
	assert.Error(t, err)
}

func buildCommentBody(vendor string, comments []string) []byte {
	le := binary.LittleEndian
	buf := make([]byte, 4+len(vendor)+4)
	le.PutUint32(buf, uint32(len(vendor)))
	copy(buf[4:], vendor)
	le.PutUint32(buf[4+len(vendor):], uint32(len(comments)))
	for _, c := range comments {
		lenBuf := make([]byte, 4)
		le.PutUint32(lenBuf, uint32(len(c)))
		buf = append(buf, lenBuf...)
		buf = append(buf, c...)
	}
	return buf
}

func TestParseComment(t *testing.T) {
	body := buildCommentBody("govorbis", []string{"ARTIST=test", "TITLE=song"})
	c, err := ParseComment(body)
	require.NoError(t, err)
	assert.Equal(t, "govorbis", c.Vendor)
	assert.Equal(t, []string{"ARTIST=test", "TITLE=song"}, c.Comments)
}

func TestParseCommentMalformed(t *testing.T) {
	_, err := ParseComment([]byte{1, 2})
	assert.Error(t, err)
}

func TestIsVorbisHeader(t *testing.T) {
	packet := append([]byte{1}, "vorbis"...)
	packet = append(packet, 0, 0, 0)
	assert.True(t, IsVorbisHeader(packet))
	assert.False(t, IsVorbisHeader([]byte("short")))
}

func TestSniffNonVorbis(t *testing.T) {
	name, ok := SniffNonVorbis([]byte("OpusHead stuff"))
	assert.True(t, ok)
	assert.Equal(t, "OPUS", name)

	_, ok = SniffNonVorbis([]byte{1, 'v', 'o', 'r', 'b', 'i', 's'})
	assert.False(t, ok)
}
