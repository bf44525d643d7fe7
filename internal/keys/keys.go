package keys

import (
	"sort"
	"strconv"
	"strings"
)

// TeamKey produces a canonical key for a team given its creature ids.
// Order does not matter and duplicates are kept, so "the same team" means
// the same multiset of creatures. Suitable for stable DB keys.
func TeamKey(creatureIDs []int) string {
	ids := append([]int(nil), creatureIDs...)
	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, "-")
}

// ParseTeamKey is the inverse of TeamKey.
func ParseTeamKey(key string) ([]int, error) {
	if strings.TrimSpace(key) == "" {
		return nil, nil
	}
	parts := strings.Split(key, "-")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// SubmissionKey identifies one submission against one battle step, used to
// collapse identical concurrent requests.
func SubmissionKey(battleID uint, version int, kind string, index int) string {
	return strconv.FormatUint(uint64(battleID), 10) + ":" + strconv.Itoa(version) + ":" + strings.ToLower(kind) + ":" + strconv.Itoa(index)
}
