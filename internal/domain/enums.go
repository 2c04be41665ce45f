package domain

// UnknownLabel is the display value used when an optional relation is absent.
const UnknownLabel = "不明"

// Gender of a speaker.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Label returns the display form of the gender.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "男性"
	case GenderFemale:
		return "女性"
	case GenderOther:
		return "その他"
	}
	return string(g)
}

// AgeRange is the age bucket of an anonymized speaker.
type AgeRange string

const (
	AgeRange30s  AgeRange = "30-39"
	AgeRange40s  AgeRange = "40-49"
	AgeRange50s  AgeRange = "50-59"
	AgeRange60s  AgeRange = "60-69"
	AgeRange70s  AgeRange = "70-79"
	AgeRange80s  AgeRange = "80-89"
	AgeRange90s  AgeRange = "90-99"
	AgeRange100s AgeRange = "100+"
)

var ageRangeLabels = map[AgeRange]string{
	AgeRange30s:  "30代",
	AgeRange40s:  "40代",
	AgeRange50s:  "50代",
	AgeRange60s:  "60代",
	AgeRange70s:  "70代",
	AgeRange80s:  "80代",
	AgeRange90s:  "90代",
	AgeRange100s: "100歳以上",
}

func (a AgeRange) String() string { return string(a) }

func (a AgeRange) IsValid() bool {
	_, ok := ageRangeLabels[a]
	return ok
}

// Label returns the display form of the age bucket.
func (a AgeRange) Label() string {
	if l, ok := ageRangeLabels[a]; ok {
		return l
	}
	return string(a)
}

// LanguageFrequency describes how often an onomatopoeia is used.
type LanguageFrequency string

const (
	FrequencyDaily     LanguageFrequency = "daily"
	FrequencyOften     LanguageFrequency = "often"
	FrequencySometimes LanguageFrequency = "sometimes"
	FrequencyRarely    LanguageFrequency = "rarely"
)

func (f LanguageFrequency) String() string { return string(f) }

func (f LanguageFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyOften, FrequencySometimes, FrequencyRarely:
		return true
	}
	return false
}

func (f LanguageFrequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "日常的に使用"
	case FrequencyOften:
		return "よく使用"
	case FrequencySometimes:
		return "たまに使用"
	case FrequencyRarely:
		return "ほとんど使用しない"
	}
	return string(f)
}

// FileType is the media kind of a language record.
type FileType string

const (
	FileTypeAudio FileType = "audio"
	FileTypeVideo FileType = "video"
	FileTypeImage FileType = "image"
)

func (t FileType) String() string { return string(t) }

func (t FileType) IsValid() bool {
	switch t {
	case FileTypeAudio, FileTypeVideo, FileTypeImage:
		return true
	}
	return false
}

func (t FileType) Label() string {
	switch t {
	case FileTypeAudio:
		return "音声"
	case FileTypeVideo:
		return "映像"
	case FileTypeImage:
		return "画像"
	}
	return string(t)
}

// ContentType is the media kind of a geographic record.
type ContentType string

const (
	ContentTypeDroneVideo ContentType = "drone_video"
	ContentTypeDronePhoto ContentType = "drone_photo"
	ContentTypeOther      ContentType = "other"
)

// GenericGeographicLabel is shown for content types missing from the label table.
const GenericGeographicLabel = "地理データ"

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeDroneVideo, ContentTypeDronePhoto, ContentTypeOther:
		return true
	}
	return false
}

// Label returns the display label. Unknown values get GenericGeographicLabel.
func (c ContentType) Label() string {
	switch c {
	case ContentTypeDroneVideo:
		return "ドローン映像"
	case ContentTypeDronePhoto:
		return "ドローン画像"
	case ContentTypeOther:
		return "その他の地理データ"
	}
	return GenericGeographicLabel
}

// Choice is a value/label pair used to populate form selects and filters.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func GenderChoices() []Choice {
	return choicesOf(GenderMale, GenderFemale, GenderOther)
}

func AgeRangeChoices() []Choice {
	return choicesOf(AgeRange30s, AgeRange40s, AgeRange50s, AgeRange60s,
		AgeRange70s, AgeRange80s, AgeRange90s, AgeRange100s)
}

func FrequencyChoices() []Choice {
	return choicesOf(FrequencyDaily, FrequencyOften, FrequencySometimes, FrequencyRarely)
}

func FileTypeChoices() []Choice {
	return choicesOf(FileTypeAudio, FileTypeVideo, FileTypeImage)
}

func ContentTypeChoices() []Choice {
	return choicesOf(ContentTypeDroneVideo, ContentTypeDronePhoto, ContentTypeOther)
}

type labeled interface {
	~string
	Label() string
}

func choicesOf[T labeled](values ...T) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: string(v), Label: v.Label()}
	}
	return out
}
