package translation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langsync/internal/events"
)

func TestParseLanguageMap(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "bare object",
			reply: `{"de_DE": "Hallo", "fr_FR": "Bonjour"}`,
			want:  map[string]string{"de_DE": "Hallo", "fr_FR": "Bonjour"},
		},
		{
			name:  "wrapped in prose and fences",
			reply: "Here you go:\n```json\n{\"ja_JP\": \"こんにちは\"}\n```\nEnjoy!",
			want:  map[string]string{"ja_JP": "こんにちは"},
		},
		{name: "no braces", reply: "I cannot do that", wantErr: true},
		{name: "reversed braces", reply: "} oops {", wantErr: true},
		{name: "not string valued", reply: `{"de_DE": 3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguageMap(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedReply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateNewKeyPartialReply(t *testing.T) {
	client := &fakeClient{replies: []string{`{"de_DE": "Neu", "fr_FR": " Nouveau ", "xx_XX": "??"}`}}
	rec := &events.Recorder{}
	req := NewKeyRequest{
		Section: "General",
		Key:     "New",
		Value:   "New",
		Languages: []Language{
			{Code: "de_DE", Name: "German"},
			{Code: "fr_FR", Name: "French"},
			{Code: "ja_JP", Name: "Japanese"},
		},
	}

	got, err := NewReconciler(client, nil, rec).TranslateNewKey(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"de_DE": "Neu", "fr_FR": "Nouveau"}, got)
	assert.Len(t, rec.AtLevel(zerolog.WarnLevel), 2)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "- ja_JP: Japanese")
	assert.Contains(t, client.prompts[0], "English text: New")
}

func TestTranslateNewKeyFailure(t *testing.T) {
	req := NewKeyRequest{Section: "General", Key: "New", Value: "New", Languages: []Language{german}}

	_, err := NewReconciler(&fakeClient{errs: []error{errors.New("timeout")}}, nil, nil).TranslateNewKey(context.Background(), req)
	assert.Error(t, err)

	_, err = NewReconciler(&fakeClient{replies: []string{"nope"}}, nil, nil).TranslateNewKey(context.Background(), req)
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestTranslateNewKeyNoLanguages(t *testing.T) {
	client := &fakeClient{}
	got, err := NewReconciler(client, nil, nil).TranslateNewKey(context.Background(), NewKeyRequest{Key: "New"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, client.prompts)
}
