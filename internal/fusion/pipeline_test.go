package fusion

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// recordingStores captures writes and their relative order.
type recordingStores struct {
	order    []string
	profile  *types.CompanyProfile
	mapping  *types.IndustryMapping
	storeErr error
}

func (s *recordingStores) UpsertCompanyProfile(_ context.Context, p *types.CompanyProfile) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	s.order = append(s.order, "profile")
	s.profile = p
	return nil
}

func (s *recordingStores) UpsertIndustryMapping(_ context.Context, m *types.IndustryMapping) error {
	s.order = append(s.order, "mapping")
	s.mapping = m
	return nil
}

// fakeClassifier records when it ran relative to the stores.
type fakeClassifier struct {
	stores  *recordingStores
	mapping *types.IndustryMapping
	err     error
}

func (c *fakeClassifier) Classify(_ context.Context, profile *types.CompanyProfile) (*types.IndustryMapping, error) {
	c.stores.order = append(c.stores.order, "classify")
	if c.err != nil {
		return nil, c.err
	}
	if c.mapping != nil {
		return c.mapping, nil
	}
	return types.NewUnmatchedMapping(profile.CompanyID), nil
}

func newTestGenerator(pools *fakePools, client *fakeClient, classifier *fakeClassifier, stores *recordingStores) *Generator {
	return NewGenerator(
		NewAggregator(pools),
		NewExtractor(client, 0),
		classifier,
		stores,
		stores,
		GeneratorOptions{},
	)
}

func validAnswer() string {
	return `{"business_summary": {"value": "Industrial CNC routers", "confidence": 0.9}}`
}

func webPool() *fakePools {
	return &fakePools{fragments: map[types.Source][]types.Fragment{
		types.SourceWeb: {frag(types.SourceWeb, pad("Acme builds industrial CNC routers"))},
	}}
}

func TestRunHappyPath(t *testing.T) {
	stores := &recordingStores{}
	sector := "Manufacturing"
	classifier := &fakeClassifier{stores: stores, mapping: &types.IndustryMapping{
		CompanyID:    "acme",
		MatchedLevel: types.LevelSector,
		Sector:       &sector,
		Confidence:   0.71,
	}}

	profile, mapping, err := newTestGenerator(
		webPool(), &fakeClient{answer: validAnswer()}, classifier, stores,
	).Run(context.Background(), "acme")

	require.NoError(t, err)
	require.NotNil(t, profile)
	require.NotNil(t, mapping)
	assert.Equal(t, types.LevelSector, mapping.MatchedLevel)

	// The profile must be durable before classification reads it.
	assert.Equal(t, []string{"profile", "classify", "mapping"}, stores.order)
	assert.Equal(t, "Industrial CNC routers", stores.profile.Field(types.FieldBusinessSummary).Value.Str)
}

func TestRunNoEvidenceStillWrites(t *testing.T) {
	stores := &recordingStores{}
	classifier := &fakeClassifier{stores: stores}
	pools := &fakePools{fragments: map[types.Source][]types.Fragment{}}
	client := &fakeClient{}

	profile, mapping, err := newTestGenerator(pools, client, classifier, stores).Run(context.Background(), "acme")

	require.NoError(t, err)
	assert.Zero(t, client.calls, "no evidence must not consult the model")
	assert.True(t, profile.Field(types.FieldBusinessSummary).Value.Null)
	assert.Equal(t, types.LevelNone, mapping.MatchedLevel)
	require.NotNil(t, stores.profile, "the all-null profile is still persisted")
	require.NotNil(t, stores.mapping)
}

func TestRunExtractionFailureWritesNothing(t *testing.T) {
	stores := &recordingStores{}
	classifier := &fakeClassifier{stores: stores}
	client := &fakeClient{err: fmt.Errorf("model unavailable")}

	profile, mapping, err := newTestGenerator(webPool(), client, classifier, stores).Run(context.Background(), "acme")

	assert.Error(t, err)
	assert.Nil(t, profile)
	assert.Nil(t, mapping)
	assert.Empty(t, stores.order, "a failed extraction must not touch the stores")
}

func TestRunClassificationFailureKeepsProfile(t *testing.T) {
	stores := &recordingStores{}
	classifier := &fakeClassifier{stores: stores, err: fmt.Errorf("embedding timeout")}

	profile, mapping, err := newTestGenerator(
		webPool(), &fakeClient{answer: validAnswer()}, classifier, stores,
	).Run(context.Background(), "acme")

	assert.Error(t, err)
	assert.NotNil(t, profile, "the committed profile is returned for the caller")
	assert.Nil(t, mapping)
	assert.Equal(t, []string{"profile", "classify"}, stores.order)
	assert.Nil(t, stores.mapping, "no mapping write after a failed classification")
}

func TestRunProfileStoreFailureStopsPipeline(t *testing.T) {
	stores := &recordingStores{storeErr: fmt.Errorf("disk full")}
	classifier := &fakeClassifier{stores: stores}

	_, _, err := newTestGenerator(
		webPool(), &fakeClient{answer: validAnswer()}, classifier, stores,
	).Run(context.Background(), "acme")

	assert.Error(t, err)
	assert.NotContains(t, stores.order, "classify", "classification must not run against an uncommitted profile")
}
