package mso

import (
	"fmt"
	"regexp"
	"strings"
)

// SharedChannel is the pseudo-channel label for filters in the shared sub
// channel block, which apply to all subwoofer outputs collectively.
const SharedChannel = "shared_sub"

// Block is one contiguous span of source text bounded by matching start/end
// markers, scoped to one channel or the shared group.
type Block struct {
	Channel string
	Shared  bool
	Text    string
}

// Boundary marker patterns. Case- and whitespace-tolerant; a channel end
// marker must carry the same label as its start marker so nested or
// out-of-order blocks for different channels do not cross-contaminate.
var (
	channelStartRe = regexp.MustCompile(`(?i)^\s*Channel:\s*"([^"]+)"\s*$`)
	channelEndRe   = regexp.MustCompile(`(?i)^\s*End\s+Channel:\s*"([^"]+)"\s*$`)
	sharedStartRe  = regexp.MustCompile(`(?i)^\s*Shared\s+sub\s+channel:\s*$`)
	sharedEndRe    = regexp.MustCompile(`(?i)^\s*End\s+shared\s+sub\s+channel\s*$`)
)

// ExtractBlocks splits a full MSO filter report into per-channel blocks and
// at most one shared sub block. Channels are returned in order of first
// appearance. Malformed boundaries (a start marker with no matching end, or
// an orphan end marker) are reported in the returned log and skipped;
// sibling well-formed blocks are unaffected. A missing shared block is not
// an error and yields a nil shared result.
func ExtractBlocks(content string) (channels []Block, shared *Block, log []string) {
	lines := strings.Split(content, "\n")
	seen := make(map[string]bool)

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := channelStartRe.FindStringSubmatch(line); m != nil {
			label := m[1]
			end := findChannelEnd(lines, i+1, label)
			if end < 0 {
				log = append(log, fmt.Sprintf("channel %q: no matching end marker, block skipped", label))
				i++
				continue
			}
			if seen[label] {
				log = append(log, fmt.Sprintf("channel %q: duplicate block, filters will be appended to the earlier block's", label))
			}
			seen[label] = true
			channels = append(channels, Block{
				Channel: label,
				Text:    strings.TrimSpace(strings.Join(lines[i+1:end], "\n")),
			})
			i = end + 1
			continue
		}

		if m := channelEndRe.FindStringSubmatch(line); m != nil {
			log = append(log, fmt.Sprintf("channel %q: end marker without a matching start, ignored", m[1]))
			i++
			continue
		}

		if sharedStartRe.MatchString(line) {
			end := findSharedEnd(lines, i+1)
			if end < 0 {
				log = append(log, "shared sub channel: no matching end marker, block skipped")
				i++
				continue
			}
			if shared != nil {
				log = append(log, "shared sub channel: duplicate block ignored")
			} else {
				shared = &Block{
					Channel: SharedChannel,
					Shared:  true,
					Text:    strings.TrimSpace(strings.Join(lines[i+1:end], "\n")),
				}
			}
			i = end + 1
			continue
		}

		if sharedEndRe.MatchString(line) {
			log = append(log, "shared sub channel: end marker without a matching start, ignored")
		}
		i++
	}

	return channels, shared, log
}

// findChannelEnd returns the line index of the next end marker carrying the
// given label, or -1 if none exists.
func findChannelEnd(lines []string, from int, label string) int {
	for j := from; j < len(lines); j++ {
		if m := channelEndRe.FindStringSubmatch(lines[j]); m != nil && strings.EqualFold(m[1], label) {
			return j
		}
	}
	return -1
}

// findSharedEnd returns the line index of the next shared end marker, or -1.
func findSharedEnd(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if sharedEndRe.MatchString(lines[j]) {
			return j
		}
	}
	return -1
}
