package api

import (
	"net/http"
	"net/url"
)

// AuditLogReason is the audit log reason to be sent with certain requests. An
// empty reason sends no header at all.
type AuditLogReason string

// Header returns the header containing the reason, or nil if the reason is
// empty.
func (r AuditLogReason) Header() http.Header {
	if r == "" {
		return nil
	}
	return http.Header{"X-Audit-Log-Reason": {url.PathEscape(string(r))}}
}
