package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// ExitCode is a job's "<code>:<signal>" pair. Both halves are non-negative.
type ExitCode struct {
	Code   int64 `json:"exit_code"`
	Signal int64 `json:"exit_signal"`
}

// ParseExitCode decodes "127:0" style values. Negative or non-integer halves
// fail the whole value.
func ParseExitCode(v string) *ExitCode {
	parts := DelimitedList(":", v)
	if len(parts) != 2 {
		return nil
	}
	code := clipNegative(castInt(parts[0]))
	signal := clipNegative(castInt(parts[1]))
	if code == nil || signal == nil {
		return nil
	}
	return &ExitCode{Code: *code, Signal: *signal}
}

func (e ExitCode) String() string {
	return fmt.Sprintf("%d:%d", e.Code, e.Signal)
}

// NTasksPerNBSC is the NtasksPerN:B:S:C job field: task counts per node,
// baseboard, socket, and core, each either a non-negative count or nil for
// the "*" don't-care sentinel.
type NTasksPerNBSC struct {
	PerNode      *int64 `json:"tasks_per_node"`
	PerBaseboard *int64 `json:"tasks_per_baseboard"`
	PerSocket    *int64 `json:"tasks_per_socket"`
	PerCore      *int64 `json:"tasks_per_core"`
}

// ParseNTasksPerNBSC decodes "0:*:*:24" style values.
func ParseNTasksPerNBSC(v string) *NTasksPerNBSC {
	slots, ok := parseDontCareTuple(v)
	if !ok {
		return nil
	}
	return &NTasksPerNBSC{
		PerNode:      slots[0],
		PerBaseboard: slots[1],
		PerSocket:    slots[2],
		PerCore:      slots[3],
	}
}

func (t NTasksPerNBSC) String() string {
	return formatDontCareTuple([4]*int64{t.PerNode, t.PerBaseboard, t.PerSocket, t.PerCore})
}

// ReqBSCT is the ReqB:S:C:T job field: requested baseboards, sockets per
// baseboard, cores per socket, and threads per core, with nil for "*".
type ReqBSCT struct {
	Baseboards          *int64 `json:"baseboard_count"`
	SocketsPerBaseboard *int64 `json:"socket_per_baseboard_count"`
	CoresPerSocket      *int64 `json:"core_per_socket_count"`
	ThreadsPerCore      *int64 `json:"thread_per_core_count"`
}

// ParseReqBSCT decodes "0:*:*:1" style values.
func ParseReqBSCT(v string) *ReqBSCT {
	slots, ok := parseDontCareTuple(v)
	if !ok {
		return nil
	}
	return &ReqBSCT{
		Baseboards:          slots[0],
		SocketsPerBaseboard: slots[1],
		CoresPerSocket:      slots[2],
		ThreadsPerCore:      slots[3],
	}
}

func (t ReqBSCT) String() string {
	return formatDontCareTuple([4]*int64{t.Baseboards, t.SocketsPerBaseboard, t.CoresPerSocket, t.ThreadsPerCore})
}

// parseDontCareTuple decodes exactly four colon-separated slots, each a
// non-negative integer or "*". A slot that is neither decodes to nil rather
// than failing, matching the don't-care scalar decoder; only the wrong slot
// count fails the tuple.
func parseDontCareTuple(v string) ([4]*int64, bool) {
	var slots [4]*int64
	parts := DelimitedList(":", v)
	if len(parts) != 4 {
		return slots, false
	}
	for i, part := range parts {
		slots[i] = DontCareInt(part)
	}
	return slots, true
}

func formatDontCareTuple(slots [4]*int64) string {
	items := make([]string, 0, 4)
	for _, slot := range slots {
		if slot == nil {
			items = append(items, DontCare)
		} else {
			items = append(items, strconv.FormatInt(*slot, 10))
		}
	}
	return strings.Join(items, ":")
}
