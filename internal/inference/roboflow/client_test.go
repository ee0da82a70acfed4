package roboflow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient() *Client {
	c := NewClient("https://serverless.roboflow.com", "test-key")
	httpmock.ActivateNonDefault(c.httpClient)
	return c
}

func TestInfer_Success(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/bird-species-detector/851",
		httpmock.NewStringResponder(200, `{"predictions":[{"class":"sparrow","confidence":0.91},{"class":"crow","confidence":0.42}]}`))

	resp, err := c.Infer(context.Background(), "bird-species-detector/851", []byte("image-bytes"))

	require.NoError(t, err)
	assert.Len(t, resp.Predictions, 2)

	top, ok := resp.Top()
	assert.True(t, ok)
	assert.Equal(t, "sparrow", top.Class)
	assert.Equal(t, 0.91, top.Confidence)
	assert.JSONEq(t, `[{"class":"sparrow","confidence":0.91},{"class":"crow","confidence":0.42}]`, string(resp.RawPredictions))
}

func TestInfer_MissingPredictionsField(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/leaf-validation/1",
		httpmock.NewStringResponder(200, `{"outputs":[]}`))

	_, err := c.Infer(context.Background(), "leaf-validation/1", []byte("image-bytes"))

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "object without predictions field", malformed.Shape)
}

func TestInfer_TopLevelArrayIsMalformed(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/leaf-validation/1",
		httpmock.NewStringResponder(200, `[{"class":"leaf"}]`))

	_, err := c.Infer(context.Background(), "leaf-validation/1", []byte("image-bytes"))

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "array", malformed.Shape)
}

func TestInfer_TopLevelNumberIsMalformed(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/leaf-validation/1",
		httpmock.NewStringResponder(200, `42`))

	_, err := c.Infer(context.Background(), "leaf-validation/1", []byte("image-bytes"))

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "number", malformed.Shape)
}

func TestInfer_EmptyPredictions(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/insect_detect_classification_v2/1",
		httpmock.NewStringResponder(200, `{"predictions":[]}`))

	resp, err := c.Infer(context.Background(), "insect_detect_classification_v2/1", []byte("image-bytes"))

	require.NoError(t, err)
	_, ok := resp.Top()
	assert.False(t, ok)
}

func TestInfer_RetriesOn500(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/bird-species-detector/851",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(500, "server error"), nil
			}
			return httpmock.NewStringResponse(200, `{"predictions":[{"class":"sparrow","confidence":0.8}]}`), nil
		})

	resp, err := c.Infer(context.Background(), "bird-species-detector/851", []byte("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	top, ok := resp.Top()
	assert.True(t, ok)
	assert.Equal(t, "sparrow", top.Class)
}

func TestInfer_NoRetryOnClientError(t *testing.T) {
	c := newMockedClient()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("POST", "https://serverless.roboflow.com/bird-species-detector/851",
		func(req *http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(403, "forbidden"), nil
		})

	_, err := c.Infer(context.Background(), "bird-species-detector/851", []byte("image-bytes"))

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
