package chat

import (
	"strings"

	"github.com/go-faster/jx"
)

// encodeGenerateRequest builds the generateContent request body: a system
// instruction plus the single user message.
func encodeGenerateRequest(systemInstruction, message string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("systemInstruction", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("parts", func(e *jx.Encoder) {
					e.Arr(func(e *jx.Encoder) {
						e.Obj(func(e *jx.Encoder) {
							e.Field("text", func(e *jx.Encoder) { e.Str(systemInstruction) })
						})
					})
				})
			})
		})
		e.Field("contents", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("role", func(e *jx.Encoder) { e.Str("user") })
					e.Field("parts", func(e *jx.Encoder) {
						e.Arr(func(e *jx.Encoder) {
							e.Obj(func(e *jx.Encoder) {
								e.Field("text", func(e *jx.Encoder) { e.Str(message) })
							})
						})
					})
				})
			})
		})
	})
	return e.Bytes()
}

// decodeReply extracts the generated text from a generateContent response:
// the concatenated text parts of the first candidate. Unknown fields are
// skipped so upstream schema additions do not break us.
func decodeReply(data []byte) (string, error) {
	var reply strings.Builder
	d := jx.DecodeBytes(data)

	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "candidates" {
			return d.Skip()
		}
		first := true
		return d.Arr(func(d *jx.Decoder) error {
			if !first {
				return d.Skip()
			}
			first = false
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "content" {
					return d.Skip()
				}
				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "parts" {
						return d.Skip()
					}
					return d.Arr(func(d *jx.Decoder) error {
						return d.Obj(func(d *jx.Decoder, key string) error {
							if key != "text" {
								return d.Skip()
							}
							s, err := d.Str()
							if err != nil {
								return err
							}
							reply.WriteString(s)
							return nil
						})
					})
				})
			})
		})
	})
	if err != nil {
		return "", err
	}
	return reply.String(), nil
}
