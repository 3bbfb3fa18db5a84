package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	b, err := c.Marshal(&LoginRequest{Identifier: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"identifier":"alice","password":"pw"}`, string(b))

	var got ValidateRequest
	require.NoError(t, c.Unmarshal([]byte(`{"token":"t"}`), &got))
	assert.Equal(t, ValidateRequest{Token: "t"}, got)
}
