package diary_test

import (
	"diary/internal/pkg/diary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractAdvice", func() {
	DescribeTable("finds the advice line",
		func(raw string, expected string) {
			advice, ok := diary.ExtractAdvice(raw)
			Expect(ok).To(BeTrue())
			Expect(advice).To(Equal(expected))
		},
		Entry("ascii colon", "1. 감정 요약: 우울함\n3. 조언: 오늘은 푹 쉬어요\n4. 색상 추천: #4682B4", "오늘은 푹 쉬어요"),
		Entry("surrounding whitespace", "3. 조언:    천천히 걸어도 괜찮아요   \n", "천천히 걸어도 괜찮아요"),
		Entry("full-width colon", "3.조언：잘하고 있어요", "잘하고 있어요"),
		Entry("no colon", "3. 조언 따뜻한 차 한잔 어때요", "따뜻한 차 한잔 어때요"),
	)

	It("falls back when there is no advice line", func() {
		advice, ok := diary.ExtractAdvice("1. 감정 요약: 설렘\n2. 감정 분석 이유: 여행 전날이라")
		Expect(ok).To(BeFalse())
		Expect(advice).To(Equal(diary.DefaultAdvice))
		Expect(advice).To(Equal("당신은 소중한 존재입니다."))
	})

	It("falls back when the advice line is empty", func() {
		advice, ok := diary.ExtractAdvice("3. 조언:   ")
		Expect(ok).To(BeFalse())
		Expect(advice).To(Equal(diary.DefaultAdvice))
	})
})

var _ = Describe("ExtractColorHex", func() {
	It("returns the first color code unchanged", func() {
		hex, ok := diary.ExtractColorHex("4. 색상 추천: #4682b4 (스틸 블루), 또는 #FFFFFF")
		Expect(ok).To(BeTrue())
		Expect(hex).To(Equal("#4682b4"))
	})

	It("falls back to gray", func() {
		hex, ok := diary.ExtractColorHex("4. 색상 추천: 하늘색")
		Expect(ok).To(BeFalse())
		Expect(hex).To(Equal("#CCCCCC"))
	})

	It("ignores codes shorter than six digits", func() {
		hex, ok := diary.ExtractColorHex("#FFF")
		Expect(ok).To(BeFalse())
		Expect(hex).To(Equal(diary.DefaultColorHex))
	})

	It("yields the same value on every run", func() {
		raw := "1. 감정 요약: 안정감\n4. 색상 추천: #8FBC8F"
		first, _ := diary.ExtractColorHex(raw)
		for i := 0; i < 5; i++ {
			again, _ := diary.ExtractColorHex(raw)
			Expect(again).To(Equal(first))
		}
	})
})

var _ = Describe("ParseAnalysisJSON", func() {
	const complete = `{
		"mood": "우울함",
		"reason": "비 오는 날씨 때문에 기분이 가라앉았어요.",
		"advice": "따뜻한 차 한잔과 함께 쉬어가요.",
		"color_hex": "#778899",
		"color_desc": "슬레이트 그레이",
		"image_prompt": "A cute cat watching the rain by a window, Japanese anime style",
		"gift": "비 오는 날 어울리는 따뜻한 배달 라떼"
	}`

	It("uses the JSON values verbatim", func() {
		analysis, err := diary.ParseAnalysisJSON(complete)
		Expect(err).NotTo(HaveOccurred())
		Expect(*analysis).To(Equal(diary.Analysis{
			Mood:        "우울함",
			Reason:      "비 오는 날씨 때문에 기분이 가라앉았어요.",
			Advice:      "따뜻한 차 한잔과 함께 쉬어가요.",
			ColorHex:    "#778899",
			ColorDesc:   "슬레이트 그레이",
			ImagePrompt: "A cute cat watching the rain by a window, Japanese anime style",
			Gift:        "비 오는 날 어울리는 따뜻한 배달 라떼",
		}))
	})

	It("ignores extra keys", func() {
		analysis, err := diary.ParseAnalysisJSON(`{"mood":"a","reason":"b","advice":"c","color_hex":"#000000","color_desc":"d","image_prompt":"e","gift":"f","score":3}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(analysis.Gift).To(Equal("f"))
	})

	DescribeTable("rejects malformed responses",
		func(raw string) {
			analysis, err := diary.ParseAnalysisJSON(raw)
			Expect(err).To(MatchError(diary.ErrMalformedResponse))
			Expect(analysis).To(BeNil())
		},
		Entry("plain text", "1. 감정 요약: 우울함"),
		Entry("empty", ""),
		Entry("array", `["mood"]`),
		Entry("null", `null`),
		Entry("python dict", `{'mood': '우울함'}`),
		Entry("markdown fenced", "```json\n{\"mood\":\"a\"}\n```"),
		Entry("missing gift", `{"mood":"a","reason":"b","advice":"c","color_hex":"#000000","color_desc":"d","image_prompt":"e"}`),
		Entry("missing mood", `{"reason":"b","advice":"c","color_hex":"#000000","color_desc":"d","image_prompt":"e","gift":"f"}`),
		Entry("null value", `{"mood":null,"reason":"b","advice":"c","color_hex":"#000000","color_desc":"d","image_prompt":"e","gift":"f"}`),
		Entry("number value", `{"mood":"a","reason":"b","advice":"c","color_hex":778899,"color_desc":"d","image_prompt":"e","gift":"f"}`),
	)
})
