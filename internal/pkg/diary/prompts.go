package diary

import "strings"

const giftSystemPrompt = `너는 섬세한 감정 분석가이자 위로 요정이야.`

const analysisInstructions = `
이 일기를 읽고 다음 항목들을 알려줘.

1. 감정 요약: 한 단어로 (예: 우울함, 설렘, 안정감 등)
2. 감정 분석 이유: 왜 그렇게 판단했는지 2~3문장으로 설명
3. 조언: 이 감정을 가진 나에게 따뜻한 한 마디 조언
4. 색상 추천: 이 감정에 어울리는 색상 한 가지를 HEX 코드로`

const giftInstructions = `
1. 감정 요약 (한 단어)
2. 감정 이유 (2~3줄)
3. 조언 (2~3줄)
4. 오늘의 색상 (HEX 코드와 한글 설명)
5. 오늘의 이미지 프롬프트 (귀여운 동물 포함, 일본 애니메이션 스타일)
6. 3만원 이하의 위로 선물 추천 (예: 배달음식, 키링, 간식, 카페 등)

다른 설명 없이 아래 키를 가진 JSON 객체 하나로만 응답해:
{
  "mood": "감정 요약",
  "reason": "감정 이유",
  "advice": "조언",
  "color_hex": "#778899",
  "color_desc": "슬레이트 그레이",
  "image_prompt": "일러스트 스타일의 고양이가 창가에서 비를 보고 있는 장면",
  "gift": "비 오는 날 어울리는 따뜻한 배달 라떼"
}`

const imagePromptInstructions = `
이 조언의 감정과 의미를 시각적으로 표현한 **2D 일러스트 이미지**를 만들고 싶어.

다음 조건을 지켜서 이미지 생성 모델에 사용할 **영어 한 줄 프롬프트**를 만들어줘:

- 일본 애니메이션 스타일 (Japanese anime style)
- 귀여운 동물이 꼭 포함되어야 해 (예: 고양이, 강아지, 토끼 등)
- 조언의 따뜻하고 감성적인 느낌이 잘 전달되도록 해줘
- 배경화면으로 어울리도록 예쁘고 부드러운 분위기로
- 너무 추상적이지 않게, 장면을 구체적으로 설명해줘

영어 한 문장으로 프롬프트를 써줘.`

// BuildAnalysisPrompt embeds the diary verbatim and asks for mood, reason,
// advice and a HEX color as numbered free-text lines.
func BuildAnalysisPrompt(diaryText string) string {
	builder := strings.Builder{}
	builder.WriteString("다음은 내가 쓴 일기야:\n\n")
	builder.WriteString(`"""`)
	builder.WriteString(diaryText)
	builder.WriteString(`"""`)
	builder.WriteString("\n")
	builder.WriteString(analysisInstructions)

	return builder.String()
}

// BuildGiftAnalysisPrompt asks for the six fields plus a gift idea as one JSON object.
func BuildGiftAnalysisPrompt(diaryText string) string {
	builder := strings.Builder{}
	builder.WriteString("다음은 사용자의 일기 내용입니다. 이 내용을 바탕으로:\n")
	builder.WriteString(giftInstructions)
	builder.WriteString("\n\n일기:\n")
	builder.WriteString(`"""`)
	builder.WriteString(diaryText)
	builder.WriteString(`"""`)

	return builder.String()
}

// BuildImagePrompt asks for a single English sentence illustrating advice.
func BuildImagePrompt(advice string) string {
	builder := strings.Builder{}
	builder.WriteString("다음은 내가 받은 조언이야:\n\n")
	builder.WriteString(`"`)
	builder.WriteString(advice)
	builder.WriteString(`"`)
	builder.WriteString("\n")
	builder.WriteString(imagePromptInstructions)

	return builder.String()
}
