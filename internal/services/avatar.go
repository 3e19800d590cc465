package services

import (
  "bytes"
  "context"
  "fmt"
  "hash/fnv"
  "image"
  "image/color"
  "image/png"
  "os"
  "strings"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"
  "gorm.io/gorm"

  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/media"
  "github.com/otostudy/otostudy-backend/internal/repos"
  "github.com/otostudy/otostudy-backend/internal/types"
  "github.com/otostudy/otostudy-backend/internal/utils"
)

const (
  avatarRenderSize = 1024
  avatarFinalSize  = 512
)

// AvatarService renders an initials avatar for a new user and stores it in
// the local media store. Everything here is best-effort cosmetics.
type AvatarService interface {
  GenerateAndStore(ctx context.Context, user *types.User) error
}

type avatarService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
  store    *media.Store

  palette  []color.NRGBA
  fontFace font.Face
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, store *media.Store) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  fontPath := utils.GetEnv("AVATAR_FONT", "", log)
  if strings.TrimSpace(fontPath) == "" {
    return nil, fmt.Errorf("env var AVATAR_FONT is empty")
  }
  face, err := loadFontFace(fontPath, 412)
  if err != nil {
    return nil, fmt.Errorf("could not load avatar font: %w", err)
  }

  return &avatarService{
    db:       db,
    log:      serviceLog,
    userRepo: userRepo,
    store:    store,
    palette: []color.NRGBA{
      {R: 0x2F, G: 0x6F, B: 0xED, A: 0xFF},
      {R: 0xE1, G: 0x5A, B: 0x51, A: 0xFF},
      {R: 0x2E, G: 0x9E, B: 0x6B, A: 0xFF},
      {R: 0x8E, G: 0x44, B: 0xAD, A: 0xFF},
      {R: 0xD9, G: 0x82, B: 0x1B, A: 0xFF},
      {R: 0x16, G: 0x7D, B: 0x7F, A: 0xFF},
    },
    fontFace: face,
  }, nil
}

func (s *avatarService) GenerateAndStore(ctx context.Context, user *types.User) error {
  if user == nil {
    return fmt.Errorf("user required")
  }
  buf, err := s.render(user)
  if err != nil {
    return err
  }
  url, err := s.store.SaveAvatar(user.ID, buf.Bytes())
  if err != nil {
    return err
  }
  if err := s.userRepo.UpdateAvatarURL(ctx, nil, user.ID, url); err != nil {
    return fmt.Errorf("failed to persist avatar url: %w", err)
  }
  user.AvatarURL = url
  return nil
}

func (s *avatarService) render(user *types.User) (*bytes.Buffer, error) {
  bg := s.palette[colorIndex(user.ID.String(), len(s.palette))]

  dc := gg.NewContext(avatarRenderSize, avatarRenderSize)
  dc.SetColor(bg)
  dc.Clear()
  dc.SetFontFace(s.fontFace)
  dc.SetRGB(1, 1, 1)
  dc.DrawStringAnchored(initials(user), avatarRenderSize/2, avatarRenderSize/2, 0.5, 0.58)

  dst := image.NewRGBA(image.Rect(0, 0, avatarFinalSize, avatarFinalSize))
  draw.CatmullRom.Scale(dst, dst.Bounds(), dc.Image(), dc.Image().Bounds(), draw.Over, nil)

  var buf bytes.Buffer
  if err := png.Encode(&buf, dst); err != nil {
    return nil, fmt.Errorf("failed to encode avatar png: %w", err)
  }
  return &buf, nil
}

func initials(user *types.User) string {
  first := strings.TrimSpace(user.FirstName)
  last := strings.TrimSpace(user.LastName)
  out := ""
  if first != "" {
    out += strings.ToUpper(first[:1])
  }
  if last != "" {
    out += strings.ToUpper(last[:1])
  }
  if out == "" && user.Email != "" {
    out = strings.ToUpper(user.Email[:1])
  }
  return out
}

func colorIndex(seed string, n int) int {
  h := fnv.New32a()
  _, _ = h.Write([]byte(seed))
  return int(h.Sum32() % uint32(n))
}

func loadFontFace(path string, points float64) (font.Face, error) {
  raw, err := os.ReadFile(path)
  if err != nil {
    return nil, err
  }
  f, err := truetype.Parse(raw)
  if err != nil {
    return nil, err
  }
  return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
