package domain

import (
	"strings"
	"unicode"
)

// entityTokens は企業名から除去する法人格トークンの一覧です。
// 小文字化後の文字列に対して出現位置を問わず除去するため、
// 長いトークンを先に並べています（例: "incorporated" を "inc" より先に）。
var entityTokens = []string{
	// 漢字表記
	"株式会社",
	"有限会社",
	"合同会社",
	"合資会社",
	"合名会社",
	// かな表記
	"かぶしきがいしゃ",
	"ゆうげんがいしゃ",
	"ごうどうがいしゃ",
	// 囲み・括弧表記
	"㈱",
	"㈲",
	"（株）",
	"(株)",
	"（有）",
	"(有)",
	// ローマ字表記
	"incorporated",
	"corporation",
	"co., ltd.",
	"co.,ltd.",
	"co., ltd",
	"co.,ltd",
	"limited",
	"inc.",
	"corp.",
	"ltd.",
	"k.k.",
	"inc",
	"corp",
	"ltd",
	"llc",
}

// punctuationStripper は区切り記号を除去します。
var punctuationStripper = strings.NewReplacer(
	".", "",
	",", "",
	"。", "",
	"・", "",
)

// NormalizeCompanyName は企業名を重複検出用の正規化キーへ変換します。
//
// 変換手順:
//  1. 小文字化
//  2. 法人格トークンの除去（前置・後置・埋め込みを問わない）
//  3. 空白の除去（全角スペースU+3000を含む）
//  4. 区切り記号（ピリオド・カンマ・句点・中黒）の除去
//
// 全入力に対して必ず文字列を返す全域関数です。入力が法人格トークンのみの
// 場合は空文字列になります。冪等であり、正規化済みの入力はそのまま返ります。
func NormalizeCompanyName(name string) string {
	s := strings.ToLower(name)

	for _, token := range entityTokens {
		s = strings.ReplaceAll(s, token, "")
	}

	// 全角スペースを含むすべての空白を除去
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	return punctuationStripper.Replace(s)
}
