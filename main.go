package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"diary/internal/config"
	"diary/internal/pkg/diary"
	"diary/internal/pkg/openai"

	_ "github.com/joho/godotenv/autoload"
)

// Analyzes a diary file (or stdin with "-") and prints the result.
//
//	go run . -size "정사각형" today.txt
func main() {
	size := flag.String("size", "", "also draw the image at this size label (스마트폰 (세로), 컴퓨터 (가로), 정사각형)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: diary [-size label] <diary file | ->")
		os.Exit(2)
	}

	text, err := readDiary(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read diary: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}
	analyzer := diary.NewAnalyzer(client, client, diary.ModelsFromConfig(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := analyzer.AnalyzeFreeText(ctx, text)
	if err != nil {
		log.Fatalf("Failed to analyze diary: %v", err)
	}

	fmt.Println(result.Raw)
	fmt.Println()
	fmt.Printf("색상: %s\n", result.ColorHex())
	fmt.Printf("조언: %s\n", result.Advice)
	fmt.Printf("이미지 프롬프트: %s\n", result.ImagePrompt)
	if result.Incomplete() {
		fmt.Println("(일부 항목은 기본값으로 대체되었습니다)")
	}

	if *size == "" {
		return
	}

	url, err := analyzer.GenerateImage(ctx, result.ImagePrompt, *size)
	if err != nil {
		log.Fatalf("Failed to generate image: %v", err)
	}
	fmt.Printf("이미지: %s\n", url)
}

func readDiary(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
