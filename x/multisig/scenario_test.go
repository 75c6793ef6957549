package multisig_test

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/x/multisig"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTwoOfThreeTreasury(t *testing.T) {
	Convey("Given a treasury guarded by 2 of 3 owners", t, func() {
		ctx := context.Background()
		f := newFixture(t, 3, 2)
		alice, bert, carl := f.owners[0], f.owners[1], f.owners[2]

		Convey("When alice proposes a mint", func() {
			id, err := f.c.Submit(ctx, "token/mint", []byte(`{"to":"bert","amount":"100"}`), alice)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, 0)

			Convey("It is pending without approvals", func() {
				n, err := f.c.ApprovalCount(id)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
				ok, err := f.c.Executable(id)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})

			Convey("And only alice approves", func() {
				So(f.c.Approve(ctx, id, alice), ShouldBeNil)

				Convey("Nobody can execute it", func() {
					_, err := f.c.Execute(ctx, id, carl)
					So(multisig.ErrInsufficientApprovals.Is(err), ShouldBeTrue)
					So(f.exec.CallCount(), ShouldEqual, 0)
				})

				Convey("Carl approves and bert, who never voted, executes", func() {
					So(f.c.Approve(ctx, id, carl), ShouldBeNil)
					p, err := f.c.Execute(ctx, id, bert)
					So(err, ShouldBeNil)
					So(p.Executed, ShouldBeTrue)
					So(f.exec.CallCount(), ShouldEqual, 1)

					Convey("Late votes are refused", func() {
						err := f.c.Approve(ctx, id, bert)
						So(multisig.ErrAlreadyExecuted.Is(err), ShouldBeTrue)
					})
				})
			})

			Convey("A stranger cannot vote", func() {
				err := f.c.Approve(ctx, id, weavetest.SequenceAddress(77))
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				n, err := f.c.ApprovalCount(id)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})
	})
}
