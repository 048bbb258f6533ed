/*
Package rid parses runtime identifiers (RIDs) and decides whether an asset
group's runtime tag applies to the current machine.

A RID is a hyphen-separated sequence of tokens. The first token names the
platform, optionally followed by a version qualifier (`win10`, `osx.10.12`).
The last token names the processor architecture. Any tokens in between are
qualifiers such as `musl`, e.g. `linux-musl-x64`.

Matching is structural: tags are tokenized and compared field by field, so the
predicate behaves identically regardless of regular expression engine.
*/
package rid
