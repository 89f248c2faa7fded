package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

type fakeProfileStorage struct {
	profiles   map[uuid.UUID]*domain.Profile
	lastValues map[string]interface{}
	err        error
}

func newFakeProfileStorage() *fakeProfileStorage {
	return &fakeProfileStorage{profiles: map[uuid.UUID]*domain.Profile{}}
}

func (f *fakeProfileStorage) GetByUserID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[id], nil
}

func (f *fakeProfileStorage) Upsert(_ context.Context, id uuid.UUID, values map[string]interface{}) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastValues = values

	p, ok := f.profiles[id]
	if !ok {
		p = &domain.Profile{ID: id}
		f.profiles[id] = p
	}
	if v, ok := values["avatar_url"].(string); ok {
		p.AvatarURL = &v
	}
	if v, ok := values["resume_url"].(string); ok {
		p.ResumeURL = &v
	}
	if v, ok := values["skills"].(domain.JSON); ok {
		p.Skills = v
	}
	return p, nil
}

type uploadedFile struct {
	key         string
	contentType string
	data        []byte
}

type fakeFileStorage struct {
	uploads   []uploadedFile
	uploadErr error
}

func (f *fakeFileStorage) UploadFile(_ context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, uploadedFile{key: key, contentType: contentType, data: data})
	return "http://storage.local/assets/" + key, nil
}

func (f *fakeFileStorage) PresignedGetURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return fmt.Sprintf("http://storage.local/assets/%s?signed=1&ttl=%d", key, int(expires.Seconds())), nil
}

func (f *fakeFileStorage) DeleteFile(_ context.Context, _ string) error {
	return nil
}

func newProfileFixture() (*fakeProfileStorage, *fakeFileStorage, ProfileUseCase) {
	profiles := newFakeProfileStorage()
	files := &fakeFileStorage{}
	uc := NewProfileUseCase(profiles, files, 600*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return profiles, files, uc
}

func TestParseJSONField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string // ожидаемый JSON, "" означает nil
	}{
		{name: "empty value", value: "", want: ""},
		{name: "valid JSON array", value: `["go","sql"]`, want: `["go","sql"]`},
		{name: "valid JSON object", value: `{"dark":true}`, want: `{"dark":true}`},
		{name: "comma separated fallback", value: "a,b,c", want: `["a","b","c"]`},
		{name: "tokens are trimmed and empties dropped", value: " a , ,b ,c,", want: `["a","b","c"]`},
		{name: "single token", value: "golang", want: `["golang"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseJSONField(tt.value)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestProfileUseCase_UpdateMyProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("sparse fields", func(t *testing.T) {
		profiles, _, uc := newProfileFixture()

		_, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Name:   "Alice",
			Skills: "go, postgres ,s3",
		})
		require.NoError(t, err)

		values := profiles.lastValues
		assert.Equal(t, "Alice", values["full_name"])
		assert.Nil(t, values["description"])
		assert.Equal(t, false, values["open_to_work"])
		assert.JSONEq(t, `["go","postgres","s3"]`, string(values["skills"].(domain.JSON)))

		// непереданные JSON-поля не затираются
		_, hasThemes := values["themes"]
		assert.False(t, hasThemes)
		_, hasExperiences := values["experiences"]
		assert.False(t, hasExperiences)

		assert.WithinDuration(t, time.Now(), values["updated_at"].(time.Time), time.Minute)
	})

	t.Run("full_name falls back to name", func(t *testing.T) {
		profiles, _, uc := newProfileFixture()

		_, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Name:     "Alias",
			FullName: "Alice Liddell",
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", profiles.lastValues["full_name"])
	})

	t.Run("avatar upload records public url", func(t *testing.T) {
		profiles, files, uc := newProfileFixture()

		profile, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Avatar: &FileUpload{Filename: "photo.PNG", ContentType: "image/png", Data: []byte("img")},
		})
		require.NoError(t, err)

		require.Len(t, files.uploads, 1)
		upload := files.uploads[0]
		assert.True(t, strings.HasPrefix(upload.key, "avatars/"+userID.String()+"/"))
		assert.True(t, strings.HasSuffix(upload.key, ".png"))
		assert.Equal(t, "image/png", upload.contentType)

		require.NotNil(t, profile.AvatarURL)
		assert.Equal(t, "http://storage.local/assets/"+upload.key, *profile.AvatarURL)
		assert.Equal(t, *profile.AvatarURL, profiles.lastValues["avatar_url"])
	})

	t.Run("resume rejected unless PDF", func(t *testing.T) {
		_, files, uc := newProfileFixture()

		_, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Resume: &FileUpload{Filename: "resume.docx", ContentType: "application/msword", Data: []byte("doc")},
		})
		assert.ErrorIs(t, err, ErrResumeNotPDF)
		assert.Empty(t, files.uploads)
	})

	t.Run("resume accepted by content type", func(t *testing.T) {
		profiles, files, uc := newProfileFixture()

		_, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Resume: &FileUpload{Filename: "resume.bin", ContentType: "application/pdf", Data: []byte("pdf")},
		})
		require.NoError(t, err)

		require.Len(t, files.uploads, 1)
		key := files.uploads[0].key
		assert.True(t, strings.HasPrefix(key, "resumes/"+userID.String()+"/"))
		assert.True(t, strings.HasSuffix(key, ".pdf"))

		// для резюме в профиле хранится ключ объекта, а не публичный URL
		assert.Equal(t, key, profiles.lastValues["resume_url"])
	})

	t.Run("resume accepted by pdf extension", func(t *testing.T) {
		_, files, uc := newProfileFixture()

		_, err := uc.UpdateMyProfile(context.Background(), userID, ProfileInput{
			Resume: &FileUpload{Filename: "Resume.PDF", ContentType: "application/octet-stream", Data: []byte("pdf")},
		})
		require.NoError(t, err)
		assert.Len(t, files.uploads, 1)
	})
}

func TestProfileUseCase_ResumeDownloadURL(t *testing.T) {
	userID := uuid.New()

	t.Run("no profile", func(t *testing.T) {
		_, _, uc := newProfileFixture()

		_, _, err := uc.ResumeDownloadURL(context.Background(), userID)
		assert.ErrorIs(t, err, ErrNoResume)
	})

	t.Run("profile without resume", func(t *testing.T) {
		profiles, _, uc := newProfileFixture()
		profiles.profiles[userID] = &domain.Profile{ID: userID}

		_, _, err := uc.ResumeDownloadURL(context.Background(), userID)
		assert.ErrorIs(t, err, ErrNoResume)
	})

	t.Run("signed url with configured expiry", func(t *testing.T) {
		profiles, _, uc := newProfileFixture()
		key := "resumes/" + userID.String() + "/file.pdf"
		profiles.profiles[userID] = &domain.Profile{ID: userID, ResumeURL: &key}

		url, expiresIn, err := uc.ResumeDownloadURL(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 600, expiresIn)
		assert.Contains(t, url, key)
		assert.Contains(t, url, "ttl=600")
	})
}

func TestProfileUseCase_GetMyProfile(t *testing.T) {
	profiles, _, uc := newProfileFixture()
	userID := uuid.New()

	// профиля еще нет — это не ошибка
	profile, err := uc.GetMyProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, profile)

	profiles.profiles[userID] = &domain.Profile{ID: userID}
	profile, err = uc.GetMyProfile(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, userID, profile.ID)
}
