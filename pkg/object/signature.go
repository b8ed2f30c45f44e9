package object

// SignatureHeader is the commit header key carrying an SSH signature.
const SignatureHeader = "sshsig"

// CommitSigningPayload returns the canonical bytes that are signed for a
// commit. The payload intentionally excludes signature headers.
func CommitSigningPayload(c *CommitObj) []byte {
	if c == nil {
		return nil
	}
	stripped := &CommitObj{Message: c.Message}
	for _, h := range c.Headers {
		if h.Key == SignatureHeader {
			continue
		}
		stripped.Headers = append(stripped.Headers, h)
	}
	return MarshalCommit(stripped)
}
