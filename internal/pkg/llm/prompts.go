package llm

import (
	"fmt"
	"strings"
)

// System prompts for the different call sites.
const (
	DetectionSystemPrompt = "你是一个专业的假新闻检测专家"
	TranslateSystemPrompt = "You are a helpful assistant specialized in translation."
	ForgerySystemPrompt   = "You are a professional expert in image authentication and forgery detection."
	EditorSystemPrompt    = "你是一个专业的新闻编辑"
)

const detectionTemplate = `
你是一个专业的文本真假信息检测专家。请分析以下内容：

【待检测内容】
%s

【我们搜索到的相关事实信息】
%s

请根据待检测内容和我们提供的相关事实信息，进行真假判断。

请用自然语言回答，但必须在回答的第一句话中明确给出"真实"或"虚假"的判断。
然后详细说明你的判断理由，包括：
1. 事实核查（根据我们提供的搜索结果和你已有的知识进行核查）
2. 逻辑分析
3. 语言特征
4. 信息来源
5. 专业分析

请确保第一句话包含明确的判断结果。
`

const translateTemplate = `
你是一个专业的文本翻译专家。请将以下中文内容翻译为英文：

【待翻译内容】
%s

只需要输出翻译结果，不要输出任何解释。
`

const forgeryReasonTemplate = `
你是一个专业的图像鉴定专家，请根据以下信息生成一段专业的图像伪造检测理由：

【图像操纵类型】：%s
【伪造文本内容】：%s
【图像相关文本】：%s
【伪造可能性】：%s

请详细解释为什么这张图片被判定为伪造，解释要专业且具体：
1. 如果涉及face_swap（替换图片中主要人物的脸），请说明检测到的具体证据和特征
2. 如果涉及face_attribute（修改人物脸部属性但不改变其身份），请描述具体修改了哪些属性
3. 如果涉及text_swap（替换整个文本但保留主要实体名），请解释文本内容不匹配的地方
4. 如果涉及text_attribute（改变文本的情感倾向），请指出文本情感倾向被如何操纵

仅输出专业的鉴定理由，不要包含额外解释或引言。理由应当专业、客观、具体且有说服力，但不要夸大。
`

const titleTemplate = `
你是一个专业的新闻编辑，擅长为文章创建吸引人的标题。请为以下内容生成一个%s风格的标题：

【文章内容】
%s

请只输出标题，不要有任何解释或额外内容。标题字数控制在30字以内。
`

const summaryTemplate = `
你是一个专业的新闻编辑，擅长对新闻内容进行概括。请为以下新闻内容生成一个%s：

【新闻内容】
%s

请仅输出概括结果，不要有任何解释或额外内容。
`

const optimizeTemplate = `
你是一位专业的文本优化专家，请将以下文本改写成%s：

【原始文本】
%s

请只输出优化后的文本，保持原意不变，不要有任何解释或额外内容。
`

// DetectionPrompt formats the fact-check prompt with gathered evidence.
func DetectionPrompt(content, searchResults string) string {
	return fmt.Sprintf(detectionTemplate, content, searchResults)
}

// TranslatePrompt formats the Chinese-to-English translation prompt.
func TranslatePrompt(content string) string {
	return fmt.Sprintf(translateTemplate, content)
}

// ForgeryReasonPrompt formats the image-forgery explanation prompt.
func ForgeryReasonPrompt(manipulationTypes, fakeWords []string, text string, fakeProbability float64) string {
	types := "未检测到明确的操纵类型"
	if len(manipulationTypes) > 0 {
		types = strings.Join(manipulationTypes, "、")
	}
	words := "未检测到明确的伪造文本内容"
	if len(fakeWords) > 0 {
		words = strings.Join(fakeWords, "、")
	}
	probability := "未知"
	if fakeProbability > 0 {
		probability = fmt.Sprintf("%.2f%%", fakeProbability*100)
	}
	return fmt.Sprintf(forgeryReasonTemplate, types, words, text, probability)
}

// TitlePrompt formats the headline-generation prompt.
func TitlePrompt(styleDescription, content string) string {
	return fmt.Sprintf(titleTemplate, styleDescription, content)
}

// SummaryPrompt formats the summarization prompt.
func SummaryPrompt(typeDescription, content string) string {
	return fmt.Sprintf(summaryTemplate, typeDescription, content)
}

// OptimizePrompt formats the text-rewrite prompt.
func OptimizePrompt(styleDescription, text string) string {
	return fmt.Sprintf(optimizeTemplate, styleDescription, text)
}
