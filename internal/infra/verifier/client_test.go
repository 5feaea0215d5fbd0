package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quest-client/internal/domain"
)

func TestSubmitBatchPostsAnswers(t *testing.T) {
	var got struct {
		Answers []map[string]any `json:"answers"`
	}
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/verify-batch", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"completed_quests": [{"quest_id": 1, "points": 10, "message": "ok"}, {"quest_id": 6, "sub_question_id": 2, "points": 5}],
			"failed_quests": [{"quest_id": 6, "sub_question_id": 1}],
			"total_points": 15
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", time.Second)
	resp, err := c.SubmitBatch(context.Background(), []domain.AnswerEntry{
		{QuestID: 1, Answer: "git version 2.43.0"},
		{QuestID: 6, SubQuestionID: 1, Answer: "wrong answer"},
	})
	require.NoError(t, err)

	require.Len(t, got.Answers, 2)
	assert.NotContains(t, got.Answers[0], "sub_question_id")
	assert.EqualValues(t, 1, got.Answers[1]["sub_question_id"])
	assert.NotEmpty(t, requestID)

	require.Len(t, resp.CompletedQuests, 2)
	assert.Equal(t, 10, resp.CompletedQuests[0].Points)
	assert.Equal(t, 2, resp.CompletedQuests[1].SubQuestionID)
	require.Len(t, resp.FailedQuests, 1)
	require.NotNil(t, resp.TotalPoints)
	assert.Equal(t, 15, *resp.TotalPoints)
}

func TestSubmitBatchWithoutTotal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"completed_quests": [], "failed_quests": []}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).SubmitBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, resp.TotalPoints)
}

func TestNetworkFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.URL, 50*time.Millisecond)
			_, err := c.SubmitBatch(context.Background(), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNetwork), "expected network error, got %v", err)

			_, err = c.GenerateProof(context.Background(), 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNetwork), "expected network error, got %v", err)
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).SubmitBatch(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestGenerateProof(t *testing.T) {
	var points int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-proof", r.URL.Path)
		var req struct {
			Points int `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		points = req.Points
		if req.Points < 0 {
			_, _ = w.Write([]byte(`{"success": false}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "verification_result": "valid", "vk": "0xabc", "public_values": "0x0000002B00000000"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)

	res, err := c.GenerateProof(context.Background(), 43)
	require.NoError(t, err)
	assert.Equal(t, 43, points)
	assert.True(t, res.Success)
	assert.Equal(t, domain.ProofArtifact{VerificationResult: "valid", VerificationKey: "0xabc", PublicValues: "0x0000002B00000000"}, res.Artifact)

	res, err = c.GenerateProof(context.Background(), -1)
	require.NoError(t, err, "a negative result is not an error")
	assert.False(t, res.Success)
	assert.Equal(t, domain.ProofArtifact{}, res.Artifact)
}
