package diary_test

import (
	"context"
	"errors"

	"diary/internal/pkg/diary"
	"diary/internal/pkg/openai"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeCompleter struct {
	answers  []string
	err      error
	requests []openai.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req openai.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

type fakeImages struct {
	model, prompt, size string
}

func (f *fakeImages) GenerateImage(_ context.Context, model string, prompt string, size string) (string, error) {
	f.model, f.prompt, f.size = model, prompt, size
	return "https://images.example.com/" + size + ".png", nil
}

var _ = Describe("Analyzer", func() {
	var (
		completer *fakeCompleter
		images    *fakeImages
		analyzer  *diary.Analyzer
		models    = diary.Models{
			Analysis:     "gpt-4o-mini",
			ImagePrompt:  "gpt-4o",
			GiftAnalysis: "gpt-4o",
			Image:        "dall-e-3",
			APIImage:     "dall-e-2",
			Temperature:  0.7,
		}
	)

	BeforeEach(func() {
		completer = &fakeCompleter{}
		images = &fakeImages{}
		analyzer = diary.NewAnalyzer(completer, images, models)
	})

	Describe("AnalyzeFreeText", func() {
		It("runs the analysis then the image prompt call", func() {
			raw := "1. 감정 요약: 우울함\n2. 감정 분석 이유: 비가 와서 기분이 가라앉았어요.\n3. 조언: 오늘은 따뜻한 차 한잔 어때요\n4. 색상 추천: #4682B4"
			completer.answers = []string{raw, "A cute puppy sipping warm tea by a rainy window, Japanese anime style."}

			result, err := analyzer.AnalyzeFreeText(context.Background(), "오늘 비가 와서 기분이 가라앉았다")
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Raw).To(Equal(raw))
			Expect(result.Advice).To(Equal("오늘은 따뜻한 차 한잔 어때요"))
			Expect(result.ColorHex()).To(Equal("#4682B4"))
			Expect(result.Incomplete()).To(BeFalse())
			Expect(result.ImagePrompt).To(Equal("A cute puppy sipping warm tea by a rainy window, Japanese anime style."))

			Expect(completer.requests).To(HaveLen(2))
			Expect(completer.requests[0].Model).To(Equal("gpt-4o-mini"))
			Expect(completer.requests[0].Temperature).To(Equal(0.7))
			Expect(completer.requests[0].Messages).To(HaveLen(1))
			Expect(completer.requests[0].Messages[0].Content).To(ContainSubstring("오늘 비가 와서 기분이 가라앉았다"))
			Expect(completer.requests[1].Model).To(Equal("gpt-4o"))
			Expect(completer.requests[1].Messages[0].Content).To(ContainSubstring(`"오늘은 따뜻한 차 한잔 어때요"`))
		})

		It("flags substituted placeholders", func() {
			completer.answers = []string{"기분이 좋아 보여요!", "A cute rabbit in a sunny meadow."}

			result, err := analyzer.AnalyzeFreeText(context.Background(), "소풍을 갔다")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Advice).To(Equal(diary.DefaultAdvice))
			Expect(result.AdviceFallback).To(BeTrue())
			Expect(result.ColorHex()).To(Equal(diary.DefaultColorHex))
			Expect(result.ColorFallback()).To(BeTrue())
			Expect(result.Incomplete()).To(BeTrue())
			Expect(completer.requests[1].Messages[0].Content).To(ContainSubstring(diary.DefaultAdvice))
		})

		It("falls back on every field for an empty answer", func() {
			completer.answers = []string{"", "A cute bear hugging a pillow."}

			result, err := analyzer.AnalyzeFreeText(context.Background(), "아무 일도 없었다")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Raw).To(BeEmpty())
			Expect(result.Advice).To(Equal(diary.DefaultAdvice))
			Expect(result.ColorHex()).To(Equal(diary.DefaultColorHex))
			Expect(result.Incomplete()).To(BeTrue())
		})

		It("never calls the model for a blank diary", func() {
			_, err := analyzer.AnalyzeFreeText(context.Background(), "  \n\t ")
			Expect(err).To(MatchError(diary.ErrBlankDiary))
			Expect(completer.requests).To(BeEmpty())
		})

		It("propagates upstream failures", func() {
			completer.err = errors.New("rate limited")

			_, err := analyzer.AnalyzeFreeText(context.Background(), "일기")
			Expect(err).To(MatchError(ContainSubstring("rate limited")))
			Expect(completer.requests).To(HaveLen(1))
		})
	})

	Describe("AnalyzeStructured", func() {
		It("sends a system and user message and parses the JSON record", func() {
			completer.answers = []string{`{"mood":"우울함","reason":"비","advice":"쉬어요","color_hex":"#778899","color_desc":"슬레이트 그레이","image_prompt":"cat","gift":"라떼"}`}

			analysis, err := analyzer.AnalyzeStructured(context.Background(), "비가 왔다")
			Expect(err).NotTo(HaveOccurred())
			Expect(analysis.Mood).To(Equal("우울함"))
			Expect(analysis.Gift).To(Equal("라떼"))

			req := completer.requests[0]
			Expect(req.Model).To(Equal("gpt-4o"))
			Expect(req.JSONObject).To(BeTrue())
			Expect(req.Messages).To(HaveLen(2))
			Expect(req.Messages[0].Role).To(Equal(openai.RoleSystem))
			Expect(req.Messages[1].Role).To(Equal(openai.RoleUser))
		})

		It("wraps upstream failures like the free-text path", func() {
			upstream := errors.New("rate limited")
			completer.err = upstream

			_, err := analyzer.AnalyzeStructured(context.Background(), "비가 왔다")
			Expect(err).To(MatchError(upstream))
			Expect(err).To(MatchError("analyze diary: rate limited"))
		})

		It("fails on partial JSON", func() {
			completer.answers = []string{`{"mood":"우울함"}`}

			analysis, err := analyzer.AnalyzeStructured(context.Background(), "비가 왔다")
			Expect(err).To(MatchError(diary.ErrMalformedResponse))
			Expect(analysis).To(BeNil())
		})

		It("rejects a blank diary", func() {
			_, err := analyzer.AnalyzeStructured(context.Background(), "")
			Expect(err).To(MatchError(diary.ErrBlankDiary))
			Expect(completer.requests).To(BeEmpty())
		})
	})

	Describe("image generation", func() {
		It("maps the page label to a size", func() {
			url, err := analyzer.GenerateImage(context.Background(), "cat", "스마트폰 (세로)")
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("https://images.example.com/1024x1792.png"))
			Expect(images.model).To(Equal("dall-e-3"))
		})

		It("uses the API model and default size", func() {
			_, err := analyzer.GenerateAPIImage(context.Background(), "cat", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(images.model).To(Equal("dall-e-2"))
			Expect(images.size).To(Equal("512x512"))
		})

		It("rejects unsupported API sizes before calling upstream", func() {
			_, err := analyzer.GenerateAPIImage(context.Background(), "cat", "1792x1024")
			Expect(err).To(MatchError(diary.ErrUnsupportedSize))
			Expect(images.prompt).To(BeEmpty())
		})
	})
})
