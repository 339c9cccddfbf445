package faqs

import (
	"context"
	"testing"

	"github.com/Emman-24/backendFlorist/pkg/db/dbtest"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func newTestService(t *testing.T) Service {
	t.Helper()
	client, _ := dbtest.Client(t)
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc
}

func TestPublicListingFiltersActiveAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	inactive := false

	_, err := svc.Create(ctx, FAQRequest{Question: "Hacen entregas?", Answer: "Si, en Pereira", Category: strPtr("envios"), Position: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, FAQRequest{Question: "Como pago?", Answer: "Transferencia", Category: strPtr("pagos"), Position: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, FAQRequest{Question: "Pregunta oculta", Answer: "Nada", Status: &inactive})
	require.NoError(t, err)

	all, err := svc.ListPublic(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Como pago?", all[0].Question)

	byCategory, err := svc.ListPublic(ctx, "envios", "")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	search, err := svc.ListPublic(ctx, "", "PEREIRA")
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Hacen entregas?", search[0].Question)

	admin, err := svc.ListAdmin(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, admin, 3)

	onlyInactive, err := svc.ListAdmin(ctx, Filter{Status: &inactive})
	require.NoError(t, err)
	require.Len(t, onlyInactive, 1)
}

func TestCountersAndToggle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	faq, err := svc.Create(ctx, FAQRequest{Question: "Abren domingos?", Answer: "Si"})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementViews(ctx, faq.ID))
	require.NoError(t, svc.IncrementViews(ctx, faq.ID))
	require.NoError(t, svc.IncrementHelpful(ctx, faq.ID))

	toggled, err := svc.ToggleStatus(ctx, faq.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Status)
	assert.Equal(t, int64(2), toggled.Views)
	assert.Equal(t, int64(1), toggled.HelpfulCount)

	err = svc.IncrementViews(ctx, 999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	updated, err := svc.Update(ctx, faq.ID, FAQRequest{Question: "Abren los domingos?", Answer: "Si, de 8 a 12", Category: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	assert.False(t, updated.Status)

	require.NoError(t, svc.Delete(ctx, faq.ID))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, faq.ID), pkgerrors.CodeNotFound))
}
