package keyword

import (
	"strings"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
)

// Dictionary 추출/추론/추천이 공유하는 고정 키워드 사전.
// 순서가 의미를 가진다: FirstMatch와 추천 사유는 앞에 있는 항목을 우선한다.
type Dictionary struct {
	terms []string
}

// defaultTerms 기본 사전. 리뷰/태그에서 자주 쓰이는 표현 기준으로 선정.
var defaultTerms = []string{
	"spicy", "mild", "sweet", "savory", "fresh",
	"clean", "hygienic", "service", "friendly",
	"wait", "queue", "value", "price", "cheap", "portion",
}

// NewDictionary 주어진 순서를 유지하는 사전을 만든다. 항목은 소문자로 정규화된다.
func NewDictionary(terms []string) *Dictionary {
	copied := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			copied = append(copied, t)
		}
	}
	return &Dictionary{terms: copied}
}

// Default 기본 사전을 만든다. 프로세스 전역 변수를 공유하지 않도록 매번 복사본을 돌려준다.
func Default() *Dictionary {
	return NewDictionary(defaultTerms)
}

// Terms 사전 항목 목록 (복사본)
func (d *Dictionary) Terms() []string {
	out := make([]string, len(d.terms))
	copy(out, d.terms)
	return out
}

// Extract 리뷰 본문에 부분 문자열로 등장하는 사전 항목마다 가중치 1.0의
// 키워드 행을 만든다. 빈 본문이면 빈 슬라이스. 순수 함수이며 저장은 호출자 몫이다.
func (d *Dictionary) Extract(reviewID uint, content string) []model.ReviewKeyword {
	var entries []model.ReviewKeyword
	if strings.TrimSpace(content) == "" {
		return entries
	}
	normalized := strings.ToLower(content)
	for _, term := range d.terms {
		if strings.Contains(normalized, term) {
			entries = append(entries, model.ReviewKeyword{
				ReviewID: reviewID,
				Keyword:  term,
				Weight:   1.0,
			})
		}
	}
	return entries
}

// FirstMatch 이름 목록 중 하나에라도 부분 문자열로 등장하는 첫 번째 사전 항목을
// 돌려준다. 여러 항목이 매칭돼도 사전 순서상 가장 앞의 것 하나만 반환한다.
func (d *Dictionary) FirstMatch(names []string) (string, bool) {
	lowered := lowerAll(names)
	for _, term := range d.terms {
		for _, name := range lowered {
			if strings.Contains(name, term) {
				return term, true
			}
		}
	}
	return "", false
}

// MatchAll 이름 목록 중 하나에라도 등장하는 사전 항목을 사전 순서대로 전부 모은다.
func (d *Dictionary) MatchAll(names []string) []string {
	lowered := lowerAll(names)
	var matched []string
	for _, term := range d.terms {
		for _, name := range lowered {
			if strings.Contains(name, term) {
				matched = append(matched, term)
				break
			}
		}
	}
	return matched
}

func lowerAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, strings.ToLower(n))
		}
	}
	return out
}
