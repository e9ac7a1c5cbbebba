package model

// Style is one selectable variant (image style, title style, summary
// type or text style) with its prompt description.
type Style struct {
	Value       string `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StyleSet is an ordered, immutable style registry. All style-listing
// endpoints and prompt builders read from one of the four sets below, so
// values and descriptions have a single source of truth.
type StyleSet struct {
	styles []Style
	byVal  map[string]Style
}

func newStyleSet(styles []Style) *StyleSet {
	byVal := make(map[string]Style, len(styles))
	for _, s := range styles {
		byVal[s.Value] = s
	}
	return &StyleSet{styles: styles, byVal: byVal}
}

// List returns all styles in declaration order.
func (s *StyleSet) List() []Style {
	out := make([]Style, len(s.styles))
	copy(out, s.styles)
	return out
}

// Lookup finds a style by value.
func (s *StyleSet) Lookup(value string) (Style, bool) {
	style, ok := s.byVal[value]
	return style, ok
}

// Values returns all valid style values.
func (s *StyleSet) Values() []string {
	out := make([]string, len(s.styles))
	for i, style := range s.styles {
		out[i] = style.Value
	}
	return out
}

// Default returns the first style of the set.
func (s *StyleSet) Default() Style {
	return s.styles[0]
}

// ImageStyles are the text-to-image generation styles.
var ImageStyles = newStyleSet([]Style{
	{Value: "realistic", Name: "REALISTIC", Description: "真实逼真的摄影表现风格，注重细节和自然光影效果，清晰呈现事件场景"},
	{Value: "watercolor", Name: "WATERCOLOR", Description: "水彩绘画效果，色彩通透自然，具有轻盈流动的质感和柔和的色彩过渡"},
	{Value: "oil_painting", Name: "OIL_PAINTING", Description: "油画艺术风格，色彩厚重饱满，具有明显的笔触层次和深厚的艺术质感"},
	{Value: "ink_painting", Name: "INK_PAINTING", Description: "中国传统水墨画风格，黑白灰层次丰富，线条流畅，意境悠远，展现东方美学"},
	{Value: "anime", Name: "ANIME", Description: "日本动漫二次元风格，色彩明亮，线条简洁，人物特征夸张，具有鲜明的卡通特点"},
	{Value: "minimalist", Name: "MINIMALIST", Description: "极简主义设计，减少干扰元素，突出主体，采用简洁的线条、形状和有限的色彩"},
	{Value: "tech", Name: "TECH", Description: "现代科技风格，融合科幻、霓虹与机械元素，具有未来感，使用蓝色调、网格、全息和数字元素，展现高科技氛围"},
	{Value: "cartoon_3d", Name: "CARTOON_3D", Description: "三维立体卡通风格，角色和场景具有体积感，色彩鲜艳，类似现代动画电影效果"},
	{Value: "abstract", Name: "ABSTRACT", Description: "抽象艺术表现手法，不拘泥于具象再现，通过形状、色彩和构图传达情感和概念"},
})

// TitleStyles are the headline-generation styles.
var TitleStyles = newStyleSet([]Style{
	{Value: "informative", Name: "INFORMATIVE", Description: "清晰准确地传达核心信息，适合严肃新闻"},
	{Value: "attractive", Name: "ATTRACTIVE", Description: "引人注目、吸引读者点击，适合热点和娱乐新闻"},
	{Value: "questioning", Name: "QUESTIONING", Description: "以疑问形式引发思考，适合评论和分析文章"},
	{Value: "dramatic", Name: "DRAMATIC", Description: "强调冲突和情节，适合重大事件报道"},
	{Value: "neutral", Name: "NEUTRAL", Description: "客观平和，不带感情色彩，适合政治和国际新闻"},
	{Value: "concise", Name: "CONCISE", Description: "简短精炼，适合快讯和摘要"},
	{Value: "emotional", Name: "EMOTIONAL", Description: "带有情感色彩，引起共鸣，适合社会和人文新闻"},
})

// SummaryTypes are the summarization variants.
var SummaryTypes = newStyleSet([]Style{
	{Value: "brief", Name: "BRIEF", Description: "简短扼要的内容摘要，通常不超过100字"},
	{Value: "detailed", Name: "DETAILED", Description: "详细的内容摘要，包含主要信息点和关键细节"},
	{Value: "key_points", Name: "KEY_POINTS", Description: "以要点列表形式提取文章的主要观点和信息"},
	{Value: "analytical", Name: "ANALYTICAL", Description: "带有分析性质的摘要，解释文章的背景和意义"},
	{Value: "news_flash", Name: "NEWS_FLASH", Description: "极简的新闻快讯形式，只包含最核心信息"},
})

// TextStyles are the text-rewrite styles.
var TextStyles = newStyleSet([]Style{
	{Value: "journalistic", Name: "JOURNALISTIC", Description: "客观、事实为主的表达方式，适合新闻报道"},
	{Value: "formal", Name: "FORMAL", Description: "正式、规范的表达方式，适合官方文档和商务通讯"},
	{Value: "casual", Name: "CASUAL", Description: "轻松、日常的表达方式，适合博客和社交媒体"},
	{Value: "academic", Name: "ACADEMIC", Description: "严谨、引用丰富的表达方式，适合学术论文和研究报告"},
	{Value: "narrative", Name: "NARRATIVE", Description: "讲故事的表达方式，有情节和场景描述"},
	{Value: "persuasive", Name: "PERSUASIVE", Description: "具有说服力的表达方式，适合评论和倡议文章"},
	{Value: "concise", Name: "CONCISE", Description: "简明扼要的表达方式，去除冗余"},
	{Value: "elaborate", Name: "ELABORATE", Description: "详细、全面的表达方式，提供更多背景和细节"},
	{Value: "professional", Name: "PROFESSIONAL", Description: "行业专业用语的表达方式，适合特定领域的文章"},
})
