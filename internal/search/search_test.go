package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/note"
)

func rec(slug, title, text string) *note.Record {
	return &note.Record{Slug: slug, Title: title, Text: text}
}

func TestEvaluate_MatchesTitleCaseInsensitive(t *testing.T) {
	records := []*note.Record{
		rec("a", "Kubernetes Guide", "body"),
		rec("b", "Other", "body"),
	}

	results, err := Evaluate(records, "kubernetes")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "a", results[0].Slug)
}

func TestEvaluate_MatchesBodyText(t *testing.T) {
	records := []*note.Record{
		rec("a", "Title", "nothing here"),
		rec("b", "Title", "the SECRET word"),
	}

	results, err := Evaluate(records, "secret")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "b", results[0].Slug)
}

func TestEvaluate_EmptyQuery_ReturnsEmptyNotCorpus(t *testing.T) {
	records := []*note.Record{rec("a", "T", "text")}

	results, err := Evaluate(records, "")
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestEvaluate_OversizedQuery_RejectedBeforeScan(t *testing.T) {
	records := []*note.Record{rec("a", "T", "text")}

	_, err := Evaluate(records, strings.Repeat("q", MaxQueryLen+1))
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryQuery))
}

func TestEvaluate_QueryAtLimit_Accepted(t *testing.T) {
	_, err := Evaluate(nil, strings.Repeat("q", MaxQueryLen))
	require.NoError(t, err)
}

func TestEvaluate_CapsAtMaxResults(t *testing.T) {
	var records []*note.Record
	for i := 0; i < MaxResults+15; i++ {
		records = append(records, rec(fmt.Sprintf("n%d", i), "match me", ""))
	}

	results, err := Evaluate(records, "match")
	require.NoError(t, err)
	require.Len(t, results, MaxResults)
	require.Equal(t, "n0", results[0].Slug)
	require.Equal(t, fmt.Sprintf("n%d", MaxResults-1), results[MaxResults-1].Slug)
}

func TestEvaluate_ResultsInSnapshotOrder(t *testing.T) {
	records := []*note.Record{
		rec("third", "z needle", ""),
		rec("first", "a needle", ""),
		rec("second", "m needle", ""),
	}

	results, err := Evaluate(records, "needle")
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "third", results[0].Slug)
	require.Equal(t, "first", results[1].Slug)
	require.Equal(t, "second", results[2].Slug)
}

func TestEvaluate_DescriptionFromMetadataOnly(t *testing.T) {
	with := rec("with", "needle", "body text stays hidden")
	with.Meta.Description = "short summary"
	without := rec("without", "needle too", "body text stays hidden")

	results, err := Evaluate([]*note.Record{with, without}, "needle")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "short summary", results[0].Description)
	require.Empty(t, results[1].Description)
}
