package payroll_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
)

func collabRow(taxID, name string) payroll.CollaboratorRow {
	return payroll.CollaboratorRow{AccountID: uuid.Nil, TaxID: taxID, Name: name}
}

func TestCollaboratorTaxIDs_Distinct(t *testing.T) {
	rows := []payroll.CollaboratorRow{
		collabRow("111", "a"),
		collabRow("222", "b"),
		collabRow("111", "a again"),
	}

	assert.Equal(t, []string{"111", "222"}, payroll.CollaboratorTaxIDs(rows))
}

func TestDedupeCollaborators_FirstOccurrenceWins(t *testing.T) {
	rows := []payroll.CollaboratorRow{
		collabRow("111", "january row"),
		collabRow("111", "february row"),
		collabRow("222", "b"),
	}

	got := payroll.DedupeCollaborators(rows, nil)

	assert.Len(t, got, 2)
	assert.Equal(t, "january row", got[0].Name)
	assert.Equal(t, "222", got[1].TaxID)
}

func TestDedupeCollaborators_DropsKnown(t *testing.T) {
	rows := []payroll.CollaboratorRow{
		collabRow("111", "a"),
		collabRow("222", "b"),
	}
	known := map[string]struct{}{"111": {}}

	got := payroll.DedupeCollaborators(rows, known)

	assert.Len(t, got, 1)
	assert.Equal(t, "222", got[0].TaxID)
}

func TestDedupeCollaborators_ReingestYieldsNothing(t *testing.T) {
	rows := []payroll.CollaboratorRow{
		collabRow("111", "a"),
		collabRow("222", "b"),
	}
	known := map[string]struct{}{"111": {}, "222": {}}

	assert.Empty(t, payroll.DedupeCollaborators(rows, known))
}

func TestDedupeStatuses(t *testing.T) {
	rows := []payroll.StatusRow{
		{Label: "Ativo"},
		{Label: "Ferias"},
		{Label: "Ativo"},
	}

	got := payroll.DedupeStatuses(rows, map[string]struct{}{"Ferias": {}})

	assert.Len(t, got, 1)
	assert.Equal(t, "Ativo", got[0].Label)

	assert.Equal(t, []string{"Ativo", "Ferias"}, payroll.StatusLabels(rows))
}
