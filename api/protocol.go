package api

// Snapshots are replaced wholesale, so uploads are bounded to keep a
// runaway client from holding the decoder open.
const boardSnapshotMaxSize = 1 << 20 // 1 MiB

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
