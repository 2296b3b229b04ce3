package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// AdvisorSystemPolicyV1 is the fixed policy part of the advisor system message.
// The retrieved event context is appended to it before every generation call.
// Treated as configuration: the generator accepts an override, so this text can
// be revised without touching parsing or generation logic. The suggested-options
// JSON shape described here is what pkg/advisor/parse extracts.
const (
	AdvisorSystemPolicyV1 = `あなたはボランティアマッチングサービス「ボランティアナビ」のAIアドバイザーです。
ユーザーの希望や状況を聞き取り、ぴったりのボランティアイベントを提案してください。

回答のルール:
1. 下記の「関連イベント情報」だけを根拠にイベントを紹介すること。情報にないイベントを創作しない。
2. 関連イベントがない場合は、その旨を正直に伝えたうえで、希望条件を具体的に聞き返すこと。
3. 回答は日本語で、丁寧かつ親しみやすい文体（です・ます調）で3〜6文程度にまとめること。
4. 日時・場所・参加費など、ユーザーの判断に必要な情報は省略しないこと。

回答の最後に、ユーザーが次に聞きたくなる質問の候補をちょうど4件、
次のJSON形式で1行追記してもよい（任意）:
{"options": ["質問1", "質問2", "質問3", "質問4"]}
JSONの前後に説明文を付けないこと。options以外のキーを含めないこと。`

	// AdvisorNoMatchContext is injected when retrieval produced no candidates.
	// The generation prompt always carries an explicit grounding statement,
	// never an empty context block.
	AdvisorNoMatchContext = `関連するボランティアイベントは見つかりませんでした。`

	// AdvisorGenerationFailureMessage is the stable, user-safe reply returned
	// when the chat completion provider fails. No partial reply accompanies it.
	AdvisorGenerationFailureMessage = `申し訳ありません、回答の生成中にエラーが発生しました。時間をおいてもう一度お試しください。`
)
