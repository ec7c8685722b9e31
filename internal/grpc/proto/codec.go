package proto

import "encoding/json"

// CodecName - имя кодека, передаётся в content-subtype
const CodecName = "json"

// JSONCodec сериализует сообщения сервиса в JSON
type JSONCodec struct{}

// Marshal кодирует сообщение
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal декодирует сообщение
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name возвращает имя кодека
func (JSONCodec) Name() string {
	return CodecName
}
