package services

import (
	"fmt"
	"log"
	"strings"
)

// 판정 결과의 고정 선행 토큰
const (
	verdictAccept = "적합"
	verdictReject = "부적합"
)

// ValidationService 는 제출된 질문을 오라클로 1차 필터링한다.
// Policy: fail open. An oracle outage or an off-script reply must never block
// submissions, so both cases count as accepted with a neutral reason.
type ValidationService struct {
	oracle *OracleService
}

func NewValidationService(oracle *OracleService) *ValidationService {
	return &ValidationService{oracle: oracle}
}

// Validate returns whether the content is worth registering, plus a
// one-sentence reason when it is not.
func (s *ValidationService) Validate(content string) (bool, string) {
	prompt := fmt.Sprintf(`당신은 QnAHub 커뮤니티의 엄격한 관리자입니다.
사용자가 제출한 다음 질문이 커뮤니티에 등록될 만한 가치가 있는지 판단해주세요.

**[판단 기준]**
아래 중 하나라도 해당되면 '부적합'입니다:
- 단순한 감정 표현 (예: "좋아요", "심심하다")
- 커뮤니티와 관련 없는 개인적인 잡담 (예: "오늘 저녁 뭐 먹죠?")
- 욕설, 비방, 광고 등 부적절한 내용
- 의미를 알 수 없는 단어나 문장

**[사용자 질문]**
"%s"

**[판단 결과]**
먼저 '적합' 또는 '부적합'이라고만 대답해주세요.
만약 '부적합'이라면, 그 이유를 한 문장으로 간결하게 설명해주세요.
(예: 부적합. 단순한 감정 표현입니다.)`, content)

	reply, err := s.oracle.Generate(prompt, false)
	if err != nil {
		log.Printf("[Validator] oracle error, passing question through: %v", err)
		return true, "AI 검증 시스템 오류"
	}

	switch {
	case strings.HasPrefix(reply, verdictReject):
		reason := strings.TrimSpace(strings.TrimPrefix(reply, verdictReject+"."))
		reason = strings.TrimSpace(strings.TrimPrefix(reason, verdictReject))
		if reason == "" {
			reason = "부적합한 질문입니다."
		}
		return false, reason
	case strings.HasPrefix(reply, verdictAccept):
		return true, "적합한 질문입니다."
	default:
		// Off-script reply, pass it through
		return true, "AI 판단 불가"
	}
}
