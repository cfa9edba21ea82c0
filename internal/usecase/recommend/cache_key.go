package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type rankCacheKeyInput struct {
	Region   string `json:"region"`
	Industry string `json:"industry"`
	SkillID  string `json:"skill_id"`
	Limit    int    `json:"limit"`
}

func normalizeKeyValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func rankCacheKey(prefix string, v Viewer, limit int) string {
	in := rankCacheKeyInput{
		Region:   normalizeKeyValue(v.Region),
		Industry: normalizeKeyValue(v.Industry),
		SkillID:  v.SkillID.String(),
		Limit:    limit,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

func workersCacheKey(v Viewer, limit int) string {
	return rankCacheKey("recommend:workers:", v, limit)
}

func jobsCacheKey(v Viewer, limit int) string {
	return rankCacheKey("recommend:jobs:", v, limit)
}
