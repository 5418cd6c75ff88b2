package payroll

// CollaboratorTaxIDs returns the distinct tax ids among the candidates, in
// first-seen order. Feed the result to Repository.KnownCollaborators.
func CollaboratorTaxIDs(rows []CollaboratorRow) []string {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.TaxID]; ok {
			continue
		}
		seen[r.TaxID] = struct{}{}
		ids = append(ids, r.TaxID)
	}
	return ids
}

// StatusLabels returns the distinct status labels among the candidates, in
// first-seen order.
func StatusLabels(rows []StatusRow) []string {
	seen := make(map[string]struct{}, len(rows))
	labels := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		labels = append(labels, r.Label)
	}
	return labels
}

// DedupeCollaborators keeps the first candidate per tax id and drops any tax
// id already present in known. Re-ingesting the same submission with the
// full known set therefore yields an empty slice.
func DedupeCollaborators(rows []CollaboratorRow, known map[string]struct{}) []CollaboratorRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]CollaboratorRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := known[r.TaxID]; ok {
			continue
		}
		if _, ok := seen[r.TaxID]; ok {
			continue
		}
		seen[r.TaxID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// DedupeStatuses keeps the first candidate per label and drops labels the
// account already has.
func DedupeStatuses(rows []StatusRow, known map[string]struct{}) []StatusRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]StatusRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := known[r.Label]; ok {
			continue
		}
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r)
	}
	return out
}
