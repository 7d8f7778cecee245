package template_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/template"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	templaterepo "github.com/pixelforge/collectibles-api/internal/repositories/accessorytemplate"
)

type OrchestratorTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	clk       *clock.Fixed
	admin     *entities.AdminCredential
	svc       template.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	repo, err := templaterepo.NewRedis(&templaterepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.clk = clock.NewFixed(time.UnixMilli(1700000000000))
	s.admin = entities.NewAdminCredential("admin_test")

	svc, err := template.NewOrchestrator(&template.Config{
		TemplateRepo:   repo,
		Clock:          s.clk,
		TemplateIDGen:  idgen.NewSequential("tmpl"),
		AccessoryIDGen: idgen.NewSequential("item"),
		Admin:          s.admin,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *OrchestratorTestSuite) createTemplate(maxSupply *int64) *entities.AccessoryTemplate {
	out, err := s.svc.CreateTemplate(s.ctx, &template.CreateTemplateInput{
		Admin:          s.admin,
		Name:           "Wizard Hat",
		Description:    "pointy",
		Type:           entities.AccessoryTypeHead,
		Rarity:         entities.RarityRare,
		BaseAttributes: map[string]string{"color": "purple"},
		MintPrice:      50,
		MaxSupply:      maxSupply,
	})
	s.Require().NoError(err)
	return out.Template
}

func (s *OrchestratorTestSuite) TestCreateTemplate() {
	tmpl := s.createTemplate(nil)

	s.True(tmpl.Active)
	s.Equal(int64(0), tmpl.CurrentSupply)
	s.Equal(entities.AccessoryTypeHead, tmpl.Type)
	s.Equal(int64(1700000000000), tmpl.CreatedAt)
}

func (s *OrchestratorTestSuite) TestCreateTemplateInvalidType() {
	_, err := s.svc.CreateTemplate(s.ctx, &template.CreateTemplateInput{
		Admin: s.admin,
		Name:  "Wizard Hat",
		Type:  entities.AccessoryType("hat"),
	})
	s.Error(err)
	s.True(errors.IsInvalidAccessoryType(err))
}

func (s *OrchestratorTestSuite) TestCreateTemplateRequiresCredential() {
	_, err := s.svc.CreateTemplate(s.ctx, &template.CreateTemplateInput{
		Admin: entities.NewAdminCredential("admin_test"),
		Name:  "Wizard Hat",
		Type:  entities.AccessoryTypeHead,
	})
	s.True(errors.IsNotAuthorized(err))
}

func (s *OrchestratorTestSuite) TestMintAccessory() {
	tmpl := s.createTemplate(nil)

	out, err := s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(50),
	})
	s.Require().NoError(err)

	item := out.Accessory
	s.Equal("Wizard Hat", item.Name)
	s.Equal(entities.AccessoryTypeHead, item.Type)
	s.Equal(entities.RarityRare, item.Rarity)
	s.Equal("purple", item.Attributes["color"])

	got, err := s.svc.GetTemplate(s.ctx, &template.GetTemplateInput{TemplateID: tmpl.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), got.Template.CurrentSupply)
}

func (s *OrchestratorTestSuite) TestMintAccessorySnapshotsTemplate() {
	tmpl := s.createTemplate(nil)

	out, err := s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(50),
	})
	s.Require().NoError(err)

	// mutating the template after the fact must not reach the minted item
	got, err := s.svc.GetTemplate(s.ctx, &template.GetTemplateInput{TemplateID: tmpl.ID})
	s.Require().NoError(err)
	got.Template.BaseAttributes["color"] = "green"

	s.Equal("purple", out.Accessory.Attributes["color"])
}

func (s *OrchestratorTestSuite) TestMintAccessoryInactive() {
	tmpl := s.createTemplate(nil)

	_, err := s.svc.SetTemplateActive(s.ctx, &template.SetTemplateActiveInput{
		Admin:      s.admin,
		TemplateID: tmpl.ID,
		Active:     false,
	})
	s.Require().NoError(err)

	_, err = s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(50),
	})
	s.Error(err)
	s.True(errors.IsTemplateInactive(err))
}

func (s *OrchestratorTestSuite) TestMintAccessoryInsufficientPayment() {
	tmpl := s.createTemplate(nil)

	_, err := s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(49),
	})
	s.Error(err)
	s.True(errors.IsInsufficientPayment(err))

	got, err := s.svc.GetTemplate(s.ctx, &template.GetTemplateInput{TemplateID: tmpl.ID})
	s.Require().NoError(err)
	s.Equal(int64(0), got.Template.CurrentSupply)
}

func (s *OrchestratorTestSuite) TestMintAccessorySupplyCap() {
	maxSupply := int64(1)
	tmpl := s.createTemplate(&maxSupply)

	_, err := s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(50),
	})
	s.Require().NoError(err)

	_, err = s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: tmpl.ID,
		Payment:    entities.NewPayment(50),
	})
	s.Error(err)
	s.True(errors.IsSupplyExceeded(err))
}

func (s *OrchestratorTestSuite) TestMintAccessoryMissingTemplate() {
	_, err := s.svc.MintAccessory(s.ctx, &template.MintAccessoryInput{
		TemplateID: "tmpl_missing",
		Payment:    entities.NewPayment(50),
	})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
