// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package noir

// Response is the envelope reported to callers of derive: either Success
// with a Result, or a Message (and Kind) describing the failure. It is never
// both.
type Response struct {
	Success bool        `json:"success"`
	Result  *Derivation `json:"result"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
}

// NewResponse builds the envelope for the outcome of a derive call. A non-nil
// err always wins: the derivation is wiped and dropped.
func NewResponse(d *Derivation, err error) Response {
	if err != nil {
		d.Wipe()
		resp := Response{Message: err.Error()}
		if k := KindOf(err); k != KindUnknown {
			resp.Kind = k.String()
		}
		return resp
	}
	if d == nil {
		return Response{Message: "derivation produced no result"}
	}
	return Response{Success: true, Result: d}
}
