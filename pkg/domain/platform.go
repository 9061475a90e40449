package domain

import "unicode"

// PlatformType tells which kind of credential a platform needs.
type PlatformType string

const (
	PlatformTypeOAuth  PlatformType = "oauth"
	PlatformTypeAPIKey PlatformType = "api_key"
)

// oauthPlatforms is the fixed set of platforms whose credentials come from an
// authorization-grant flow. Every other platform token is an API key platform.
var oauthPlatforms = map[string]struct{}{
	"twitter":   {},
	"youtube":   {},
	"instagram": {},
	"discord":   {},
	"telegram":  {},
	"github":    {},
	"tiktok":    {},
	"vimeo":     {},
	"shopify":   {},
	"medium":    {},
	"linkedin":  {},
	"facebook":  {},
	"reddit":    {},
	"google":    {},
	"notion":    {},
}

var platformDisplayNames = map[string]string{
	"airtable":      "Airtable",
	"amplitude":     "Amplitude",
	"anthropic":     "Anthropic",
	"apify":         "Apify",
	"asana":         "Asana",
	"assemblyai":    "AssemblyAI",
	"aws":           "Amazon Web Services",
	"azure":         "Microsoft Azure",
	"baserow":       "Baserow",
	"bitbucket":     "Bitbucket",
	"brave":         "Brave Search",
	"brevo":         "Brevo",
	"browserless":   "Browserless",
	"bubble":        "Bubble",
	"calendly":      "Calendly",
	"canva":         "Canva",
	"clearbit":      "Clearbit",
	"clickup":       "ClickUp",
	"cloudflare":    "Cloudflare",
	"coda":          "Coda",
	"cohere":        "Cohere",
	"coinbase":      "Coinbase",
	"coingecko":     "CoinGecko",
	"coinmarketcap": "CoinMarketCap",
	"confluence":    "Confluence",
	"deepgram":      "Deepgram",
	"deepl":         "DeepL",
	"deepseek":      "DeepSeek",
	"discord":       "Discord",
	"docusign":      "DocuSign",
	"dropbox":       "Dropbox",
	"elevenlabs":    "ElevenLabs",
	"facebook":      "Facebook",
	"figma":         "Figma",
	"firecrawl":     "Firecrawl",
	"fireflies":     "Fireflies",
	"freshdesk":     "Freshdesk",
	"gemini":        "Google Gemini",
	"giphy":         "Giphy",
	"github":        "GitHub",
	"gitlab":        "GitLab",
	"gmail":         "Gmail",
	"google":        "Google",
	"groq":          "Groq",
	"heygen":        "HeyGen",
	"hubspot":       "HubSpot",
	"huggingface":   "Hugging Face",
	"instagram":     "Instagram",
	"intercom":      "Intercom",
	"jina":          "Jina AI",
	"jira":          "Jira",
	"klaviyo":       "Klaviyo",
	"leonardo":      "Leonardo AI",
	"linear":        "Linear",
	"linkedin":      "LinkedIn",
	"lumalabs":      "Luma Labs",
	"mailchimp":     "Mailchimp",
	"mailgun":       "Mailgun",
	"medium":        "Medium",
	"mistral":       "Mistral AI",
	"mixpanel":      "Mixpanel",
	"monday":        "Monday.com",
	"mongodb":       "MongoDB",
	"newsapi":       "NewsAPI",
	"notion":        "Notion",
	"openai":        "OpenAI",
	"openrouter":    "OpenRouter",
	"pagerduty":     "PagerDuty",
	"perplexity":    "Perplexity",
	"pexels":        "Pexels",
	"pinecone":      "Pinecone",
	"pinterest":     "Pinterest",
	"pipedrive":     "Pipedrive",
	"posthog":       "PostHog",
	"quickbooks":    "QuickBooks",
	"rapidapi":      "RapidAPI",
	"recraft":       "Recraft",
	"reddit":        "Reddit",
	"replicate":     "Replicate",
	"resend":        "Resend",
	"runway":        "Runway",
	"salesforce":    "Salesforce",
	"segment":       "Segment",
	"sendgrid":      "SendGrid",
	"serpapi":       "SerpAPI",
	"shopify":       "Shopify",
	"slack":         "Slack",
	"snowflake":     "Snowflake",
	"spotify":       "Spotify",
	"stabilityai":   "Stability AI",
	"stripe":        "Stripe",
	"supabase":      "Supabase",
	"tavily":        "Tavily",
	"telegram":      "Telegram",
	"tiktok":        "TikTok",
	"todoist":       "Todoist",
	"trello":        "Trello",
	"twilio":        "Twilio",
	"twitter":       "Twitter",
	"typeform":      "Typeform",
	"unsplash":      "Unsplash",
	"vimeo":         "Vimeo",
	"webflow":       "Webflow",
	"whatsapp":      "WhatsApp",
	"wordpress":     "WordPress",
	"xero":          "Xero",
	"youtube":       "YouTube",
	"zapier":        "Zapier",
	"zendesk":       "Zendesk",
	"zoom":          "Zoom",
}

var platformIcons = map[string]string{
	"airtable":      "airtable",
	"amplitude":     "amplitude",
	"anthropic":     "anthropic",
	"apify":         "apify",
	"asana":         "asana",
	"assemblyai":    "assemblyai",
	"aws":           "aws",
	"azure":         "azure",
	"baserow":       "baserow",
	"bitbucket":     "bitbucket",
	"brave":         "brave",
	"brevo":         "brevo",
	"browserless":   "browserless",
	"bubble":        "bubble",
	"calendly":      "calendly",
	"canva":         "canva",
	"clearbit":      "clearbit",
	"clickup":       "clickup",
	"cloudflare":    "cloudflare",
	"coda":          "coda",
	"cohere":        "cohere",
	"coinbase":      "coinbase",
	"coingecko":     "coingecko",
	"coinmarketcap": "coinmarketcap",
	"confluence":    "confluence",
	"deepgram":      "deepgram",
	"deepl":         "deepl",
	"deepseek":      "deepseek",
	"discord":       "discord",
	"docusign":      "docusign",
	"dropbox":       "dropbox",
	"elevenlabs":    "elevenlabs",
	"facebook":      "facebook",
	"figma":         "figma",
	"firecrawl":     "firecrawl",
	"fireflies":     "fireflies",
	"freshdesk":     "freshdesk",
	"gemini":        "gemini",
	"giphy":         "giphy",
	"github":        "github",
	"gitlab":        "gitlab",
	"gmail":         "gmail",
	"google":        "google",
	"groq":          "groq",
	"heygen":        "heygen",
	"hubspot":       "hubspot",
	"huggingface":   "huggingface",
	"instagram":     "instagram",
	"intercom":      "intercom",
	"jina":          "jina",
	"jira":          "jira",
	"klaviyo":       "klaviyo",
	"leonardo":      "leonardo",
	"linear":        "linear",
	"linkedin":      "linkedin",
	"lumalabs":      "lumalabs",
	"mailchimp":     "mailchimp",
	"mailgun":       "mailgun",
	"medium":        "medium",
	"mistral":       "mistral",
	"mixpanel":      "mixpanel",
	"monday":        "monday",
	"mongodb":       "mongodb",
	"newsapi":       "newsapi",
	"notion":        "notion",
	"openai":        "openai",
	"openrouter":    "openrouter",
	"pagerduty":     "pagerduty",
	"perplexity":    "perplexity",
	"pexels":        "pexels",
	"pinecone":      "pinecone",
	"pinterest":     "pinterest",
	"pipedrive":     "pipedrive",
	"posthog":       "posthog",
	"quickbooks":    "quickbooks",
	"rapidapi":      "rapidapi",
	"recraft":       "recraft",
	"reddit":        "reddit",
	"replicate":     "replicate",
	"resend":        "resend",
	"runway":        "runway",
	"salesforce":    "salesforce",
	"segment":       "segment",
	"sendgrid":      "sendgrid",
	"serpapi":       "serpapi",
	"shopify":       "shopify",
	"slack":         "slack",
	"snowflake":     "snowflake",
	"spotify":       "spotify",
	"stabilityai":   "stabilityai",
	"stripe":        "stripe",
	"supabase":      "supabase",
	"tavily":        "tavily",
	"telegram":      "telegram",
	"tiktok":        "tiktok",
	"todoist":       "todoist",
	"trello":        "trello",
	"twilio":        "twilio",
	"twitter":       "twitter",
	"typeform":      "typeform",
	"unsplash":      "unsplash",
	"vimeo":         "vimeo",
	"webflow":       "webflow",
	"whatsapp":      "whatsapp",
	"wordpress":     "wordpress",
	"xero":          "xero",
	"youtube":       "youtube",
	"zapier":        "zapier",
	"zendesk":       "zendesk",
	"zoom":          "zoom",
}

// IsOAuthPlatform reports whether the platform token requires an OAuth grant.
func IsOAuthPlatform(platform string) bool {
	_, ok := oauthPlatforms[platform]
	return ok
}

// ClassifyPlatform returns the credential type for a platform token. Tokens
// outside the OAuth set are API key platforms, including tokens we have never
// seen before.
func ClassifyPlatform(platform string) PlatformType {
	if IsOAuthPlatform(platform) {
		return PlatformTypeOAuth
	}

	return PlatformTypeAPIKey
}

// PlatformDisplayName returns the human readable name for a platform token.
// Unknown tokens fall back to the token with its first character upper-cased.
func PlatformDisplayName(platform string) string {
	if name, ok := platformDisplayNames[platform]; ok {
		return name
	}

	if platform == "" {
		return ""
	}

	runes := []rune(platform)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// PlatformIcon returns the icon identifier for a platform token. Unknown
// tokens get the generic key icon.
func PlatformIcon(platform string) string {
	if icon, ok := platformIcons[platform]; ok {
		return icon
	}

	return "key"
}
