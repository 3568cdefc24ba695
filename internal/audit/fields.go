package audit

import (
	"sharebin/internal/domain/entity"
)

// Field tables for the auditable entities. Navigation fields (Preview,
// Metadata) are deliberately absent: only scalar columns are captured.

func FileFields(f *entity.File) []Field {
	return []Field{
		{Name: "ID", Value: f.ID},
		{Name: "Filename", Value: f.Filename},
		{Name: "RelativeLocation", Value: f.RelativeLocation},
		{Name: "ShortURL", Value: f.ShortURL},
		{Name: "MimeType", Value: f.MimeType},
		{Name: "Size", Value: f.Size},
		{Name: "Public", Value: f.Public},
		{Name: "UserID", Value: f.UserID},
		{Name: "CreatedAt", Value: f.CreatedAt},
	}
}

func PreviewFields(p *entity.Preview) []Field {
	return []Field{
		{Name: "FileID", Value: p.FileID},
		{Name: "Filename", Value: p.Filename},
		{Name: "RelativeLocation", Value: p.RelativeLocation},
		{Name: "MimeType", Value: p.MimeType},
		{Name: "Size", Value: p.Size},
	}
}

func ImageMetadataFields(m *entity.ImageMetadata) []Field {
	return []Field{
		{Name: "FileID", Value: m.FileID},
		{Name: "Width", Value: m.Width},
		{Name: "Height", Value: m.Height},
		{Name: "ColorSpace", Value: m.ColorSpace},
		{Name: "Compression", Value: m.Compression},
	}
}

func ShortLinkFields(l *entity.ShortLink) []Field {
	return []Field{
		{Name: "ID", Value: l.ID},
		{Name: "Code", Value: l.Code},
		{Name: "TargetURL", Value: l.TargetURL},
		{Name: "Vanity", Value: l.Vanity},
		{Name: "UserID", Value: l.UserID},
		{Name: "CreatedAt", Value: l.CreatedAt},
	}
}
