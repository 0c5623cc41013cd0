package alloc

// Kind distinguishes the protected anchor row from supplementary rows.
type Kind string

const (
	// KindPrimary is the protected anchor allocation. Exactly one PRIMARY
	// row exists in any valid draft, and it can never be removed by the user.
	KindPrimary Kind = "PRIMARY"

	// KindSecondary is a freely removable supplementary allocation.
	KindSecondary Kind = "SECONDARY"
)

// ValidKinds defines allowed row kinds.
var ValidKinds = map[Kind]bool{
	KindPrimary:   true,
	KindSecondary: true,
}

// RowKey identifies one draft row for its lifetime.
//
// Keys are unique within an editing session, stable across edits and
// reorders, and never reused after a row is deleted. They carry no business
// meaning and never leave the client - commit payloads identify rows by
// subject code, not by key.
type RowKey string

// Row is one beneficiary's share of a fixed resource, as held in the draft.
type Row struct {
	// Key is the session-unique identity of this row.
	Key RowKey `json:"key"`

	// SubjectCode is the foreign identifier of the selected beneficiary.
	// Empty only while the row is being edited; never empty in a commit.
	SubjectCode string `json:"subject_code"`

	// SubjectName is the display label cached at selection time.
	SubjectName string `json:"subject_name"`

	// SharePercent is an integer percentage in [0, 100]. Shares are
	// integer-only fixed point - no fractional shares are representable.
	SharePercent int `json:"share_percent"`

	// Kind marks the row as the protected PRIMARY anchor or a SECONDARY row.
	Kind Kind `json:"kind"`

	// DraftAddition is true for rows created client-side this session that
	// are not yet part of the server snapshot. It governs whether the host
	// shows a beneficiary picker or a read-only label.
	DraftAddition bool `json:"draft_addition"`
}

// Snapshot is an immutable copy of a draft taken for validation or commit.
//
// Snapshots decouple validation and commit from further edits: mutating the
// draft after taking a snapshot never changes the snapshot.
type Snapshot struct {
	// ResourceID identifies the resource whose allocation is being edited.
	ResourceID string `json:"resource_id"`

	// Rows holds the draft rows in display order.
	Rows []Row `json:"rows"`

	// Dirty reports whether the draft has been mutated since the last seed.
	Dirty bool `json:"dirty"`
}

// ServerRow is one allocation row as reported by the authoritative backend.
// Server rows carry no client identity - the draft store assigns fresh keys
// when seeding from a server snapshot.
type ServerRow struct {
	SubjectCode  string `json:"subject_code"`
	SubjectName  string `json:"subject_name"`
	SharePercent int    `json:"share_percent"`
	Kind         Kind   `json:"kind"`
}

// Allocation is the authoritative server state of one resource's allocation.
type Allocation struct {
	ResourceID string      `json:"resource_id"`
	Title      string      `json:"title"`
	Rows       []ServerRow `json:"rows"`
}

// CommitRecord is one row of a batch write in the backend's expected shape.
type CommitRecord struct {
	ResourceID   string `json:"resource_id"`
	SubjectCode  string `json:"subject_code"`
	SharePercent int    `json:"share_percent"`
	Kind         Kind   `json:"kind"`
}

// Subject is one entry of the candidate subject directory.
type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
