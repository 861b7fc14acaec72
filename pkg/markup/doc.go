// Package markup rebuilds untrusted HTML fragments into safe ones constrained
// by an explicit allow-list policy.
//
// Sanitize walks the parsed fragment and keeps only the tags and attributes a
// Policy permits. Disallowed tags are unwrapped rather than deleted: their
// children are kept and re-parented to the surrounding context, so readable
// text survives while the dangerous wrapper does not. Tags whose content is
// unsafe regardless of wrapper can be listed in Policy.DeleteWithContents to
// drop the whole subtree instead.
//
// Three attribute classes are stripped unconditionally, independent of any
// allow-list entry: inline style attributes, srcdoc attributes, and any
// attribute whose name matches the event-handler convention (on*). The strip
// runs as a final stage after allow-list resolution, so a permissive policy
// cannot re-admit them.
//
// URL-bearing attributes (href, src and friends) are validated with
// sanitizer.SanitizeURL against the policy's scheme allow-list; a rejected
// URL drops the attribute, never the node. Text content is normalised with
// sanitizer.SanitizeString and re-escaped on output; it is never reparsed as
// markup, which closes the decode-then-reparse escalation path.
//
// Sanitize is a total function: malformed or hostile input degrades to safe
// escaped text instead of returning an error, and sanitizing already-clean
// output under the same policy returns it unchanged. The package holds no
// state and is safe for concurrent use.
//
// Example – rendering a remotely-sourced description:
//
//	safe := markup.Sanitize(remoteDescription, markup.Default())
//
// Example – a caption rendered as plain text:
//
//	text := markup.StripTags(remoteCaption)
package markup
