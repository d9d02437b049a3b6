package extraction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// fakeClient implements llm.Client with canned responses.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Close() error { return nil }

func TestExtract_Success(t *testing.T) {
	client := &fakeClient{response: "Name,Title,Notes\nAda Lovelace,Professor,\n"}
	x := New(client)

	raw, err := x.Extract(context.Background(), "https://econ.example.edu/people", "page text")
	require.NoError(t, err)
	assert.Contains(t, raw, "Ada Lovelace")

	// The prompt carries the instruction, the source URL, and the content
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "https://econ.example.edu/people")
	assert.Contains(t, client.prompts[0], "page text")
	assert.Contains(t, client.prompts[0], "Name,Title,Notes")
}

func TestExtract_EmptyResponse(t *testing.T) {
	x := New(&fakeClient{response: "   \n"})

	_, err := x.Extract(context.Background(), "https://econ.example.edu/people", "text")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindTransient, svcErr.Kind)
	assert.False(t, svcErr.Fatal())
}

func TestExtract_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  ErrorKind
		wantFatal bool
	}{
		{
			name:      "unauthorized is fatal auth",
			err:       &googleapi.Error{Code: http.StatusUnauthorized, Message: "invalid key"},
			wantKind:  KindAuth,
			wantFatal: true,
		},
		{
			name:      "forbidden is fatal auth",
			err:       &googleapi.Error{Code: http.StatusForbidden, Message: "key not permitted"},
			wantKind:  KindAuth,
			wantFatal: true,
		},
		{
			name:      "rate limit is retryable quota",
			err:       &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"},
			wantKind:  KindQuota,
			wantFatal: false,
		},
		{
			name:      "server error is transient",
			err:       &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "overloaded"},
			wantKind:  KindTransient,
			wantFatal: false,
		},
		{
			name:      "wrapped API error is still classified",
			err:       fmt.Errorf("failed to generate content: %w", &googleapi.Error{Code: http.StatusUnauthorized}),
			wantKind:  KindAuth,
			wantFatal: true,
		},
		{
			name:      "plain error is transient",
			err:       errors.New("connection reset"),
			wantKind:  KindTransient,
			wantFatal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := New(&fakeClient{err: tt.err})

			_, err := x.Extract(context.Background(), "https://example.edu", "text")
			require.Error(t, err)

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.wantKind, svcErr.Kind)
			assert.Equal(t, tt.wantFatal, svcErr.Fatal())
		})
	}
}
